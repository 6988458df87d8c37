// Package generate rewrites a namedgen template file into ordinary Go source
// carrying the named call forms of every annotated function.
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"go/build/constraint"
	"go/format"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/namedgen/internal/combos"
	"github.com/phobologic/namedgen/internal/defaults"
	"github.com/phobologic/namedgen/internal/lang"
	"github.com/phobologic/namedgen/internal/model"
	"github.com/phobologic/namedgen/internal/parse"
	"github.com/phobologic/namedgen/internal/synth"
)

// Generator turns templates into generated files. It owns a tree-sitter
// parser and must not be shared between goroutines.
type Generator struct {
	lang   *lang.Language
	parser *sitter.Parser
	query  *sitter.Query
	log    *slog.Logger
}

// New returns a Generator for the Go language.
func New(log *slog.Logger) (*Generator, error) {
	l := lang.Go()
	q, err := l.GetTagQuery()
	if err != nil {
		return nil, fmt.Errorf("loading %s query: %w", l.Name, err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Generator{lang: l, parser: l.NewParser(), query: q, log: log}, nil
}

// Result is the output of one template.
type Result struct {
	Source  []byte
	Entries []model.ReportEntry
}

type edit struct {
	start, end int
	text       string
}

// File generates the output for the template at path. It fails on the first
// annotated function that cannot be processed.
func (g *Generator) File(path string, source []byte) (*Result, error) {
	decls, err := parse.ExtractFuncs(g.lang, g.parser, g.query, source, path)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	var edits []edit

	for i := range decls {
		decl := &decls[i]
		entry, rendered, err := g.function(decl)
		if err != nil {
			var me *model.Error
			if errors.As(err, &me) {
				me.Func = decl.Signature.Name
				me.At(path, decl.Line)
			}
			return nil, err
		}
		res.Entries = append(res.Entries, entry)

		edits = append(edits,
			edit{start: lineStart(source, decl.DirectiveSpan.Start, true), end: lineEnd(source, decl.DirectiveSpan.End)},
			edit{start: decl.NameSpan.Start, end: decl.NameSpan.End, text: entry.Binding.Positional},
			edit{start: decl.DeclEnd, end: decl.DeclEnd, text: "\n\n" + rendered},
		)
	}

	edits = append(edits, constraintEdits(source)...)

	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by namedgen from %s. DO NOT EDIT.\n\n", filepath.Base(path))
	out.Write(apply(source, edits))

	formatted, err := format.Source(out.Bytes())
	if err != nil {
		return nil, (&model.Error{Kind: model.MalformedSource, Msg: fmt.Sprintf("formatting generated code: %v", err)}).At(path, 0)
	}
	res.Source = formatted
	return res, nil
}

// function validates one annotated function and renders its binder. Nothing
// is enumerated until the signature and default table are known good.
func (g *Generator) function(decl *model.FuncDecl) (model.ReportEntry, string, error) {
	sig := decl.Signature

	entries, err := defaults.Parse(decl.Directive)
	if err != nil {
		return model.ReportEntry{}, "", err
	}
	table, err := defaults.Build(&sig, entries)
	if err != nil {
		return model.ReportEntry{}, "", err
	}

	optional := combos.Optional(sig, table)
	if len(optional) > combos.MaxOptional {
		return model.ReportEntry{}, "", model.Errorf(model.TooManyDefaults, sig.Name,
			"%d defaulted parameters exceed the limit of %d", len(optional), combos.MaxOptional)
	}

	rules := combos.Enumerate(sig, table)
	binding, err := synth.Bind(sig, table, rules)
	if err != nil {
		return model.ReportEntry{}, "", err
	}

	names := make([]string, len(optional))
	for i, p := range optional {
		names[i] = p.Name
	}

	g.log.Debug("bound function",
		"file", decl.File,
		"func", sig.Name,
		"params", len(sig.Params),
		"optional", len(optional),
		"shapes", len(binding.Forms))

	return model.ReportEntry{
		File:     decl.File,
		Line:     decl.Line,
		Optional: names,
		Binding:  binding,
	}, synth.Render(binding), nil
}

// constraintEdits removes the build constraint lines, and the blank line
// following them, from the file header.
func constraintEdits(source []byte) []edit {
	var edits []edit
	pos := 0
	for pos < len(source) {
		end := lineEnd(source, pos)
		line := strings.TrimSpace(string(source[pos:end]))
		switch {
		case constraint.IsGoBuild(line) || constraint.IsPlusBuild(line):
			if end < len(source) && isBlankLine(source, end) {
				end = lineEnd(source, end)
			}
			edits = append(edits, edit{start: pos, end: end})
		case line == "" || strings.HasPrefix(line, "//"):
		default:
			return edits
		}
		pos = end
	}
	return edits
}

func apply(source []byte, edits []edit) []byte {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].start < edits[j].start
	})

	var out bytes.Buffer
	pos := 0
	for _, e := range edits {
		if e.start < pos {
			continue
		}
		out.Write(source[pos:e.start])
		out.WriteString(e.text)
		pos = e.end
	}
	out.Write(source[pos:])
	return out.Bytes()
}

// lineStart returns the start of the line holding offset. With blankDoc set,
// a directly preceding bare "//" line is included.
func lineStart(source []byte, offset int, blankDoc bool) int {
	start := bytes.LastIndexByte(source[:offset], '\n') + 1
	if !blankDoc || start == 0 {
		return start
	}
	prev := bytes.LastIndexByte(source[:start-1], '\n') + 1
	if strings.TrimSpace(string(source[prev:start])) == "//" {
		return prev
	}
	return start
}

// lineEnd returns the offset just past the newline ending the line that
// holds offset.
func lineEnd(source []byte, offset int) int {
	i := bytes.IndexByte(source[offset:], '\n')
	if i < 0 {
		return len(source)
	}
	return offset + i + 1
}

func isBlankLine(source []byte, offset int) bool {
	return strings.TrimSpace(string(source[offset:lineEnd(source, offset)])) == ""
}
