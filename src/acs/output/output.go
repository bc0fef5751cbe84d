// Package output renders command results as tables, JSON or YAML, and
// prints colored status lines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Format selects how structured results are rendered
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --output value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected table, json or yaml)", s)
	}
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

// Printer writes results to Out and failures to Err
type Printer struct {
	Out    io.Writer
	Err    io.Writer
	Format Format
}

// New returns a Printer on stdout/stderr
func New(format Format) *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr, Format: format}
}

// Result prints data as JSON or YAML, or as a table built from headers and
// rows when the format is table.
func (p *Printer) Result(data any, headers []string, rows [][]string) error {
	switch p.Format {
	case FormatJSON:
		return p.JSON(data)
	case FormatYAML:
		return p.YAML(data)
	default:
		p.Table(headers, rows)
		return nil
	}
}

// JSON writes data as indented JSON
func (p *Printer) JSON(data any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// YAML writes data as YAML
func (p *Printer) YAML(data any) error {
	enc := yaml.NewEncoder(p.Out)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

// Table writes tabular data
func (p *Printer) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// Success prints a green status line
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.Out, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Failure prints a red status line to Err
func (p *Printer) Failure(format string, args ...any) {
	fmt.Fprintln(p.Err, failureStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Info prints a cyan status line
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.Out, infoStyle.Render(fmt.Sprintf(format, args...)))
}

// Title prints a bold heading
func (p *Printer) Title(text string) {
	fmt.Fprintln(p.Out, titleStyle.Render(text))
}

// Error prints err as a failure line
func (p *Printer) Error(err error) {
	p.Failure("Error: %v", err)
}

// Structured reports whether output is machine-readable
func (p *Printer) Structured() bool {
	return p.Format == FormatJSON || p.Format == FormatYAML
}
