// Package diag renders an errlog.Log as caret-annotated source
// diagnostics for the CLI's `parse` and `run --verbose` subcommands — the
// spec-mandated plain report (errlog.Log.Report) stays the canonical
// machine-comparable format; this package is strictly a nicer rendering
// of the same entries for a human at a terminal.
package diag

import (
	"fmt"
	"strings"

	"github.com/apptap/tap/internal/errlog"
)

// Renderer formats errlog.Entry values against a known source text.
type Renderer struct {
	Source string
	File   string
	Color  bool
}

// New creates a Renderer for the given source text. file is shown in the
// header when non-empty; pass "" for stdin/inline sources.
func New(source, file string) *Renderer {
	return &Renderer{Source: source, File: file}
}

// Format renders one entry with a source line and caret indicator.
func (r *Renderer) Format(e errlog.Entry) string {
	var sb strings.Builder

	if r.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", e.Code.Label(), r.File, e.Line, e.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", e.Code.Label(), e.Line, e.Column)
	}

	if line := r.sourceLine(e.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max0(e.Column-1)))
		r.writeColored(&sb, "^", "\033[1;31m")
		sb.WriteString("\n")
	}

	r.writeColored(&sb, e.Message, "\033[1m")
	return sb.String()
}

// FormatAll renders every entry in log, separated by blank lines, with a
// leading summary line when there is more than one.
func (r *Renderer) FormatAll(log *errlog.Log) string {
	entries := log.Entries()
	if len(entries) == 0 {
		return ""
	}
	if len(entries) == 1 {
		return r.Format(entries[0])
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n\n", len(entries))
	for i, e := range entries {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(entries))
		sb.WriteString(r.Format(e))
		if i < len(entries)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func (r *Renderer) writeColored(sb *strings.Builder, s, code string) {
	if r.Color {
		sb.WriteString(code)
	}
	sb.WriteString(s)
	if r.Color {
		sb.WriteString("\033[0m")
	}
}

func (r *Renderer) sourceLine(lineNum int) string {
	if r.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(r.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
