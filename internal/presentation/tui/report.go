// Package tui renders block reports for interactive terminals. It is the
// modal-dialog counterpart of the headless message-attach path: the CLI
// wires it as the gate's report sink only when stdout is a terminal.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
)

// Sink implements ports.ReportSink on a terminal writer.
type Sink struct {
	out    io.Writer
	render func(string) (string, error)
}

// NewSink creates a sink that renders markdown reports with glamour.
// It uses auto style detection (light/dark background).
func NewSink(out io.Writer) *Sink {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	render := func(markdown string) (string, error) {
		if r == nil {
			return markdown, nil
		}
		return r.Render(markdown)
	}

	return &Sink{out: out, render: render}
}

// Publish renders the report. A colored severity banner is printed first,
// then the markdown body.
func (s *Sink) Publish(_ context.Context, report *domain.Report) error {
	p := termenv.ColorProfile()
	banner := termenv.String(fmt.Sprintf(" %s ", report.Verdict)).
		Foreground(p.Color("#ffffff")).
		Background(p.Color(severityColor(report.Verdict))).
		Bold()

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, banner)

	rendered, err := s.render(buildMarkdown(report))
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	_, err = fmt.Fprintln(s.out, strings.TrimRight(rendered, "\n"))
	return err
}

func buildMarkdown(report *domain.Report) string {
	var b strings.Builder

	title := report.Title
	if title == "" {
		title = "Validation results"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if report.Message != "" {
		fmt.Fprintf(&b, "%s\n\n", report.Message)
	}

	if len(report.Validators) > 0 {
		b.WriteString("| Validator | Result |\n|---|---|\n")
		for _, v := range report.Validators {
			result := v.Result.String()
			if v.Evaluating {
				result = "still evaluating"
			}
			fmt.Fprintf(&b, "| %s | %s |\n", v.Name, result)
		}
		b.WriteString("\n")
	}

	if report.Help != "" {
		fmt.Fprintf(&b, "%s\n", report.Help)
	}

	return b.String()
}

func severityColor(s domain.Severity) string {
	switch s {
	case domain.SeverityValid:
		return "#34d399"
	case domain.SeverityWarning:
		return "#fbbf24"
	case domain.SeverityError:
		return "#f87171"
	case domain.SeverityCritical:
		return "#ef4444"
	default:
		return "#b91c1c"
	}
}

var _ ports.ReportSink = (*Sink)(nil)
