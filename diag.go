package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// diagnostics writes styled error and warning lines. Styling is dropped when
// w is not a terminal.
type diagnostics struct {
	w         io.Writer
	errStyle  lipgloss.Style
	warnStyle lipgloss.Style
}

func newDiagnostics(w io.Writer) *diagnostics {
	r := lipgloss.NewRenderer(w)
	return &diagnostics{
		w:         w,
		errStyle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warnStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
}

func (d *diagnostics) errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.w, "%s %s\n", d.errStyle.Render("error:"), fmt.Sprintf(format, args...))
}

func (d *diagnostics) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.w, "%s %s\n", d.warnStyle.Render("warning:"), fmt.Sprintf(format, args...))
}
