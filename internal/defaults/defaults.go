// Package defaults parses //named: directives and builds the default table
// of an annotated function.
//
// Default expressions are pasted into generated methods, so they resolve in
// the package scope of the template. A parameter whose name a default refers
// to is renamed inside those methods. The default of a variadic parameter is
// passed with "..." and must be a slice.
package defaults

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"

	"github.com/phobologic/namedgen/internal/model"
)

const keyword = "defaults"

// Parse splits directive text of the form `defaults(name = expr, ...)` into
// entries in the order written. Empty text and `defaults()` declare no
// defaults. Expressions are kept verbatim.
func Parse(directive string) ([]model.DefaultEntry, error) {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return nil, nil
	}

	src := []byte(directive)
	var errs scanner.ErrorList
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) {
		errs.Add(pos, msg)
	}, 0)

	offset := func(pos token.Pos) int { return file.Offset(pos) }

	pos, tok, lit := s.Scan()
	if tok != token.IDENT || lit != keyword {
		return nil, malformed("expected %s(...), found %q", keyword, directive)
	}
	if _, tok, _ = s.Scan(); tok != token.LPAREN {
		return nil, malformed("expected ( after %s", keyword)
	}

	var entries []model.DefaultEntry
	closed := false
	for !closed {
		pos, tok, lit = s.Scan()
		if tok == token.RPAREN {
			break
		}
		if tok != token.IDENT {
			return nil, malformed("expected parameter name at offset %d, found %s", offset(pos), describe(tok, lit))
		}
		name := lit
		if _, tok, _ = s.Scan(); tok != token.ASSIGN {
			return nil, malformed("expected = after %s", name)
		}

		start := -1
		depth := 0
		for {
			pos, tok, lit = s.Scan()
			if tok == token.EOF {
				return nil, malformed("unterminated %s(...)", keyword)
			}
			if start < 0 {
				start = offset(pos)
			}
			switch tok {
			case token.LPAREN, token.LBRACK, token.LBRACE:
				depth++
				continue
			case token.RBRACK, token.RBRACE:
				depth--
				continue
			case token.RPAREN:
				if depth > 0 {
					depth--
					continue
				}
				closed = true
			case token.COMMA:
				if depth > 0 {
					continue
				}
			default:
				continue
			}
			break
		}

		expr := strings.TrimSpace(directive[start:offset(pos)])
		if expr == "" {
			return nil, malformed("missing default value for %s", name)
		}
		if _, err := parser.ParseExpr(expr); err != nil {
			return nil, malformed("default for %s is not an expression: %s", name, expr)
		}
		entries = append(entries, model.DefaultEntry{Param: name, Expr: expr})
	}

	if _, tok, lit = s.Scan(); tok != token.EOF && !(tok == token.SEMICOLON && lit == "\n") {
		return nil, malformed("unexpected %s after %s(...)", describe(tok, lit), keyword)
	}
	if len(errs) > 0 {
		return nil, malformed("%v", errs.Err())
	}
	return entries, nil
}

// Build validates entries against sig and returns the default table. The
// HasDefault flag of every defaulted parameter in sig is set.
func Build(sig *model.Signature, entries []model.DefaultEntry) (model.DefaultTable, error) {
	table := make(model.DefaultTable, len(entries))

	var unknown []string
	for _, e := range entries {
		if _, ok := sig.Param(e.Param); !ok {
			unknown = append(unknown, e.Param)
			continue
		}
		if _, dup := table[e.Param]; dup {
			return nil, model.Errorf(model.DuplicateDefault, sig.Name, "default for `%s` declared more than once", e.Param)
		}
		table[e.Param] = e
	}

	if len(unknown) > 0 {
		suffix := ""
		if len(unknown) > 1 {
			suffix = "s"
		}
		takes := "arguments"
		if len(sig.Params) == 1 {
			takes = "argument"
		}
		return nil, model.Errorf(model.UnknownParameter, sig.Name,
			"unrecognized argument%s %s in defaults, function takes %s: [%s]",
			suffix, formatNames(unknown), takes, strings.Join(sig.ParamNames(), ", "))
	}

	for _, p := range sig.Params {
		e, ok := table[p.Name]
		if ok && p.Variadic && !sliceLike(e.Expr) {
			return nil, model.Errorf(model.MalformedDirective, sig.Name,
				"default for variadic `%s` must be a slice, found %s", p.Name, e.Expr)
		}
	}

	refs := identifiers(table)
	taken := make(map[string]struct{}, len(sig.Params)+len(refs))
	for ref := range refs {
		taken[ref] = struct{}{}
	}
	for _, p := range sig.Params {
		taken[p.Name] = struct{}{}
	}

	for i := range sig.Params {
		p := &sig.Params[i]
		p.HasDefault = table.Has(p.Name)
		p.Local = ""
		if _, shadowed := refs[p.Name]; shadowed {
			local := p.Name + "_"
			for {
				if _, used := taken[local]; !used {
					break
				}
				local += "_"
			}
			taken[local] = struct{}{}
			p.Local = local
		}
	}
	return table, nil
}

// identifiers returns every identifier the default expressions of table
// may refer to. Selected field and method names are skipped; composite
// literal keys are kept.
func identifiers(table model.DefaultTable) map[string]struct{} {
	refs := make(map[string]struct{})
	var visit func(ast.Node) bool
	visit = func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			ast.Inspect(n.X, visit)
			return false
		case *ast.Ident:
			if n.Name != "_" {
				refs[n.Name] = struct{}{}
			}
		}
		return true
	}
	for _, e := range table {
		expr, err := parser.ParseExpr(e.Expr)
		if err != nil {
			continue
		}
		ast.Inspect(expr, visit)
	}
	return refs
}

// sliceLike reports whether expr can be a slice value. Literals of other
// kinds and non-slice composite literals are rejected; anything whose type
// depends on declarations elsewhere is accepted.
func sliceLike(expr string) bool {
	x, err := parser.ParseExpr(expr)
	if err != nil {
		return false
	}
	for {
		p, ok := x.(*ast.ParenExpr)
		if !ok {
			break
		}
		x = p.X
	}
	switch x := x.(type) {
	case *ast.BasicLit, *ast.FuncLit, *ast.BinaryExpr:
		return false
	case *ast.UnaryExpr:
		return x.Op == token.ARROW
	case *ast.CompositeLit:
		switch t := x.Type.(type) {
		case *ast.ArrayType:
			return t.Len == nil
		case *ast.MapType, *ast.StructType:
			return false
		}
	}
	return true
}

func formatNames(names []string) string {
	if len(names) == 1 {
		return "`" + names[0] + "`"
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func describe(tok token.Token, lit string) string {
	if lit != "" {
		return fmt.Sprintf("%q", lit)
	}
	return tok.String()
}

func malformed(format string, args ...any) *model.Error {
	return &model.Error{Kind: model.MalformedDirective, Msg: fmt.Sprintf(format, args...)}
}
