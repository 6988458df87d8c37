package synth

import (
	"fmt"
	"strings"

	"github.com/phobologic/namedgen/internal/model"
)

// Bind synthesizes every rule and publishes the call forms under the
// original function name.
func Bind(sig model.Signature, table model.DefaultTable, rules []model.CombinationRule) (model.Binding, error) {
	b := model.Binding{
		Func:       sig.Name,
		Var:        sig.Name,
		Type:       CallsTypeName(sig.Name),
		Positional: PositionalName(sig.Name),
		Result:     sig.Result,
		Forms:      make([]model.CallForm, 0, len(rules)),
	}

	seen := make(map[string]model.CombinationRule, len(rules))
	for _, rule := range rules {
		form := Synthesize(sig, table, rule)
		if prev, dup := seen[form.Method]; dup {
			return model.Binding{}, model.Errorf(model.ShapeCollision, sig.Name,
				"call shapes (%s) and (%s) both map to method %s",
				tokenList(prev.Supplied), tokenList(rule.Supplied), form.Method)
		}
		seen[form.Method] = rule
		b.Forms = append(b.Forms, form)
	}

	return b, nil
}

// Render returns the Go source of a binding: the variable, its type and one
// method per call form.
func Render(b model.Binding) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "// %s calls %s with named arguments.\n", b.Var, b.Positional)
	fmt.Fprintf(&sb, "var %s %s\n\n", b.Var, b.Type)
	fmt.Fprintf(&sb, "type %s struct{}\n", b.Type)

	for _, f := range b.Forms {
		sb.WriteString("\n")
		renderForm(&sb, b, f)
	}

	return sb.String()
}

func renderForm(sb *strings.Builder, b model.Binding, f model.CallForm) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		if p.Variadic {
			params[i] = p.LocalName() + " ..." + p.Type
		} else {
			params[i] = p.LocalName() + " " + p.Type
		}
	}

	fmt.Fprintf(sb, "func (%s) %s(%s)", b.Type, f.Method, strings.Join(params, ", "))
	if b.Result != "" {
		sb.WriteString(" " + b.Result)
	}
	sb.WriteString(" {\n\t")
	if b.Result != "" {
		sb.WriteString("return ")
	}
	fmt.Fprintf(sb, "%s(%s)\n}\n", b.Positional, strings.Join(f.Args, ", "))
}

func tokenList(params []model.Parameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
