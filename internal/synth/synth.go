// Package synth turns call shapes into Go methods that forward to a
// positional function call, and binds them under the function's name.
package synth

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/phobologic/namedgen/internal/model"
)

// MethodPrefix starts every call-form method name.
const MethodPrefix = "With"

// MethodName returns the method name for a named-token sequence: the prefix
// followed by each supplied parameter name, title-cased, in order.
func MethodName(supplied []model.Parameter) string {
	// A Caser is stateful; each call gets its own.
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	b.WriteString(MethodPrefix)
	for _, p := range supplied {
		b.WriteString(title.String(p.Name))
	}
	return b.String()
}

// PositionalName is the name the original function is renamed to.
func PositionalName(fn string) string {
	return lowerFirst(fn) + "Positional"
}

// CallsTypeName is the zero-size type carrying the call forms of fn.
func CallsTypeName(fn string) string {
	return fn + "Calls"
}

// Synthesize builds the call form of rule: its method name and parameters,
// and the full positional argument list with defaults filled in.
func Synthesize(sig model.Signature, table model.DefaultTable, rule model.CombinationRule) model.CallForm {
	supplied := make(map[string]struct{}, len(rule.Supplied))
	for _, p := range rule.Supplied {
		supplied[p.Name] = struct{}{}
	}

	form := model.CallForm{
		Rule:   rule,
		Method: MethodName(rule.Supplied),
		Params: rule.Supplied,
		Args:   make([]string, 0, len(sig.Params)),
	}

	for _, p := range sig.Params {
		var arg string
		if _, ok := supplied[p.Name]; ok {
			arg = p.LocalName()
		} else {
			entry, _ := table.Get(p.Name)
			arg = entry.Expr
		}
		if p.Variadic {
			arg += "..."
		}
		form.Args = append(form.Args, arg)
	}

	return form
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
