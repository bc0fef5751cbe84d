package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func newTestPrinter(format Format) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Printer{Out: &out, Err: &errOut, Format: format}, &out, &errOut
}

type item struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// =============================================================================
// Format Tests
// =============================================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"", FormatTable, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

// =============================================================================
// Result Tests
// =============================================================================

func TestResult_JSON(t *testing.T) {
	p, out, _ := newTestPrinter(FormatJSON)
	if err := p.Result([]item{{ID: 1, Name: "alice"}}, nil, nil); err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	var got []item
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(got) != 1 || got[0].Name != "alice" {
		t.Errorf("unexpected JSON result %+v", got)
	}
	if !strings.Contains(out.String(), "  ") {
		t.Error("expected indented JSON output")
	}
}

func TestResult_YAML(t *testing.T) {
	p, out, _ := newTestPrinter(FormatYAML)
	if err := p.Result(item{ID: 2, Name: "bob"}, nil, nil); err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	var got item
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML output: %v", err)
	}
	if got.ID != 2 || got.Name != "bob" {
		t.Errorf("unexpected YAML result %+v", got)
	}
}

func TestResult_Table(t *testing.T) {
	p, out, _ := newTestPrinter(FormatTable)
	err := p.Result(nil, []string{"ID", "USERNAME"}, [][]string{{"1", "alice"}, {"22", "bob"}})
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "USERNAME") {
		t.Errorf("unexpected header %q", lines[0])
	}
	// Columns are aligned.
	if strings.Index(lines[1], "alice") != strings.Index(lines[2], "bob") {
		t.Errorf("columns not aligned:\n%s", out.String())
	}
}

// =============================================================================
// Status Line Tests
// =============================================================================

func TestStatusLines(t *testing.T) {
	p, out, errOut := newTestPrinter(FormatTable)

	p.Success("User %s registered", "alice")
	p.Error(errors.New("store unreachable"))

	if !strings.Contains(out.String(), "User alice registered") {
		t.Errorf("success line missing: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "store unreachable") {
		t.Errorf("failure line missing: %q", errOut.String())
	}
	if strings.Contains(out.String(), "store unreachable") {
		t.Error("failure written to stdout")
	}
}

func TestStructured(t *testing.T) {
	for format, want := range map[Format]bool{FormatTable: false, FormatJSON: true, FormatYAML: true} {
		p, _, _ := newTestPrinter(format)
		if p.Structured() != want {
			t.Errorf("Structured() for %s = %v", format, !want)
		}
	}
}
