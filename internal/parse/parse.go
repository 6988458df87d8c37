// Package parse extracts annotated function signatures from Go template
// files using tree-sitter.
package parse

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/namedgen/internal/lang"
	"github.com/phobologic/namedgen/internal/model"
)

// DirectivePrefix marks the comment that annotates a function.
const DirectivePrefix = "//named:"

// ExtractFuncs parses a template file and returns every top-level function
// annotated with a //named: directive, in source order.
// The parser must be created for the Go language.
// filePath is used only for positions in errors and FuncDecl.File.
func ExtractFuncs(l *lang.Language, parser *sitter.Parser, query *sitter.Query, source []byte, filePath string) ([]model.FuncDecl, error) {
	if len(source) == 0 {
		return nil, nil
	}

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, (&model.Error{Kind: model.MalformedSource, Msg: err.Error()}).At(filePath, 0)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := 0
		if n := firstError(root); n != nil {
			line = int(n.StartPoint().Row) + 1
		}
		return nil, (&model.Error{Kind: model.MalformedSource, Msg: "syntax error"}).At(filePath, line)
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, root)

	var decls []model.FuncDecl

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, source)

		var nameNode, defNode *sitter.Node
		var captureName string
		for _, c := range match.Captures {
			cname := query.CaptureNameForId(c.Index)
			switch cname {
			case "name":
				nameNode = c.Node
			case "definition.function", "definition.method":
				captureName = cname
				defNode = c.Node
			}
		}
		if nameNode == nil || defNode == nil {
			continue
		}

		directive, derr := findDirective(defNode, source)
		if derr != nil {
			return nil, derr.At(filePath, int(defNode.StartPoint().Row)+1)
		}
		if directive == nil {
			continue
		}

		name := lang.NodeText(nameNode, source)
		line := int(directive.StartPoint().Row) + 1

		if captureName == "definition.method" {
			recv := l.FindReceiverType(defNode, source)
			return nil, model.Errorf(model.UnsupportedContext, name,
				"named arguments are not supported on methods (receiver %s)", recv).At(filePath, line)
		}

		sig, serr := extractSignature(defNode, nameNode, source)
		if serr != nil {
			return nil, serr.At(filePath, line)
		}

		decls = append(decls, model.FuncDecl{
			Signature: sig,
			Directive: strings.TrimSpace(strings.TrimPrefix(lang.NodeText(directive, source), DirectivePrefix)),
			File:      filePath,
			Line:      line,
			NameSpan:  span(nameNode),
			DirectiveSpan: model.Span{
				Start: int(directive.StartByte()),
				End:   int(directive.EndByte()),
			},
			DeclEnd: int(defNode.EndByte()),
		})
	}

	return decls, nil
}

// findDirective returns the //named: comment in the run of comments
// immediately above decl, or nil if there is none.
func findDirective(decl *sitter.Node, source []byte) (*sitter.Node, *model.Error) {
	var found *sitter.Node
	next := decl
	for prev := decl.PrevSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevSibling() {
		if prev.EndPoint().Row+1 < next.StartPoint().Row || prev.StartPoint().Column != 0 {
			break
		}
		if strings.HasPrefix(lang.NodeText(prev, source), DirectivePrefix) {
			if found != nil {
				return nil, &model.Error{Kind: model.MalformedDirective, Msg: "more than one " + DirectivePrefix + " directive"}
			}
			found = prev
		}
		next = prev
	}
	return found, nil
}

func extractSignature(defNode, nameNode *sitter.Node, source []byte) (model.Signature, *model.Error) {
	name := lang.NodeText(nameNode, source)
	sig := model.Signature{
		Name: name,
		Line: int(nameNode.StartPoint().Row) + 1,
	}

	if name == "init" || name == "main" {
		return sig, model.Errorf(model.UnsupportedContext, name,
			"named arguments are not supported on func %s", name)
	}
	if tp := defNode.ChildByFieldName("type_parameters"); tp != nil {
		return sig, model.Errorf(model.UnsupportedContext, name,
			"named arguments are not supported on generic functions %s", lang.CollapseWhitespace(lang.NodeText(tp, source)))
	}
	if res := defNode.ChildByFieldName("result"); res != nil {
		sig.Result = resultTypes(res, source)
	}

	params := defNode.ChildByFieldName("parameters")
	if params == nil {
		return sig, nil
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		decl := params.NamedChild(i)
		variadic := false
		switch decl.Type() {
		case "parameter_declaration":
		case "variadic_parameter_declaration":
			variadic = true
		default:
			continue
		}

		typeNode := decl.ChildByFieldName("type")
		if typeNode == nil {
			return sig, model.Errorf(model.MalformedSource, name, "parameter %d has no type", len(sig.Params))
		}
		typ := lang.NodeText(typeNode, source)

		names := declNames(decl, typeNode, source)
		if len(names) == 0 {
			return sig, model.Errorf(model.UnsupportedContext, name,
				"parameter %d (%s) has no name and cannot be passed by name", len(sig.Params), typ)
		}
		for _, n := range names {
			if n == "_" {
				return sig, model.Errorf(model.UnsupportedContext, name,
					"parameter %d is blank and cannot be passed by name", len(sig.Params))
			}
			sig.Params = append(sig.Params, model.Parameter{
				Name:     n,
				Position: len(sig.Params),
				Type:     typ,
				Variadic: variadic,
			})
		}
	}

	return sig, nil
}

// declNames returns the names declared before the type in a parameter
// declaration.
func declNames(decl, typeNode *sitter.Node, source []byte) []string {
	var names []string
	for j := 0; j < int(decl.NamedChildCount()); j++ {
		child := decl.NamedChild(j)
		isName := child.Type() == "identifier" || child.Type() == "blank_identifier"
		if isName && child.StartByte() < typeNode.StartByte() {
			names = append(names, lang.NodeText(child, source))
		}
	}
	return names
}

// resultTypes renders a result list with its names dropped: "(base int)"
// becomes "int" and "(n int, err error)" becomes "(int, error)".
func resultTypes(res *sitter.Node, source []byte) string {
	if res.Type() != "parameter_list" {
		return lang.NodeText(res, source)
	}
	var types []string
	for i := 0; i < int(res.NamedChildCount()); i++ {
		decl := res.NamedChild(i)
		if decl.Type() != "parameter_declaration" {
			continue
		}
		typeNode := decl.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		typ := lang.NodeText(typeNode, source)
		n := max(len(declNames(decl, typeNode, source)), 1)
		for i := 0; i < n; i++ {
			types = append(types, typ)
		}
	}
	switch len(types) {
	case 0:
		return ""
	case 1:
		return types[0]
	}
	return "(" + strings.Join(types, ", ") + ")"
}

func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if n := firstError(node.Child(i)); n != nil {
			return n
		}
	}
	return nil
}

func span(node *sitter.Node) model.Span {
	return model.Span{Start: int(node.StartByte()), End: int(node.EndByte())}
}
