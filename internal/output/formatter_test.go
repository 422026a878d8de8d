package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	restore := SetWriter(&buf)
	defer restore()

	err := JSON(map[string]interface{}{
		"success": true,
		"domain":  "example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["domain"] != "example.com" {
		t.Errorf("expected domain in output, got %v", decoded)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	restore := SetWriter(&buf)
	defer restore()

	Table(
		[]string{"NAME", "CNAME"},
		[][]string{
			{"tokyo-1234", "tokyo-1234.herokussl.com"},
			{"x", "y"},
		},
	)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header, separator, 2 rows), got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("unexpected header line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "----") {
		t.Errorf("expected separator, got %q", lines[1])
	}
	// Columns are padded to the widest cell.
	if !strings.Contains(lines[3], "x         ") {
		t.Errorf("expected padded short cell, got %q", lines[3])
	}
}

func TestTableEmptyHeaders(t *testing.T) {
	var buf bytes.Buffer
	restore := SetWriter(&buf)
	defer restore()

	Table(nil, [][]string{{"ignored"}})
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty headers, got %q", buf.String())
	}
}

func TestStatusMessages(t *testing.T) {
	var buf bytes.Buffer
	restore := SetWriter(&buf)
	defer restore()

	Success("certificate installed for %s", "example.com")
	Error("push failed")
	Warn("skipping validation")
	Info("polling %d challenges", 2)
	Print("plain %s", "text")

	out := buf.String()
	for _, want := range []string{
		"✓ certificate installed for example.com",
		"✗ push failed",
		"! skipping validation",
		"→ polling 2 challenges",
		"plain text",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output %q", want, out)
		}
	}
}
