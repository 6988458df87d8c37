// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/phobologic/namedgen/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a Report into TOON format: one table of bindings and one
// table of generated call shapes.
func Encode(r *model.Report) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(r.Root)))

	var bindingRows [][]string
	for i := range r.Entries {
		e := &r.Entries[i]
		bindingRows = append(bindingRows, []string{
			e.File,
			e.Binding.Func,
			fmt.Sprintf("%d", e.Line),
			strings.Join(e.Optional, " "),
			fmt.Sprintf("%d", len(e.Binding.Forms)),
		})
	}
	parts = append(parts, formatTabular("bindings", []string{"file", "function", "line", "optional", "shapes"}, bindingRows))

	var shapeRows [][]string
	for i := range r.Entries {
		b := &r.Entries[i].Binding
		for j := range b.Forms {
			f := &b.Forms[j]
			names := make([]string, len(f.Params))
			for k, p := range f.Params {
				names[k] = p.Name
			}
			shapeRows = append(shapeRows, []string{
				b.Func,
				f.Method,
				strings.Join(names, " "),
			})
		}
	}
	parts = append(parts, formatTabular("shapes", []string{"function", "method", "supplied"}, shapeRows))

	return strings.Join(parts, "\n")
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
