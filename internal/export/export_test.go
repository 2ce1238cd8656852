package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/guimmamanna/synthforge/internal/generate"
)

func sampleRow() generate.Row {
	return generate.Row{
		"id":    generate.String("abc-123"),
		"total": generate.Float(42.5),
		"valid": generate.Bool(true),
		"note":  generate.Null(),
		"seen":  generate.Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestCSVExporterWritesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	columns := []string{"id", "total", "valid", "note", "seen"}
	exp, err := New(FormatCSV, dir, "widgets", columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := exp.WriteRow(sampleRow()); err != nil {
		t.Fatalf("write row: %v", err)
	}
	if err := exp.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "widgets.csv"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "id,total,valid,note,seen\n") {
		t.Fatalf("unexpected header: %q", content)
	}
	if !strings.Contains(content, "abc-123,42.5,true,,2024-03-01") {
		t.Fatalf("unexpected row content: %q", content)
	}
}

func TestJSONExporterWritesOneObjectPerLine(t *testing.T) {
	dir := t.TempDir()
	columns := []string{"id", "total"}
	exp, err := New(FormatJSON, dir, "widgets", columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := exp.WriteRow(generate.Row{"id": generate.String("x"), "total": generate.Int(3)}); err != nil {
		t.Fatalf("write row: %v", err)
	}
	exp.Close()

	data, err := os.ReadFile(filepath.Join(dir, "widgets.jsonl"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"id":"x"`) || !strings.Contains(string(data), `"total":3`) {
		t.Fatalf("unexpected jsonl content: %q", string(data))
	}
}

func TestSQLExporterEscapesQuotesAndNulls(t *testing.T) {
	dir := t.TempDir()
	columns := []string{"id", "note"}
	exp, err := New(FormatSQL, dir, "widgets", columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := generate.Row{"id": generate.String("o'brien"), "note": generate.Null()}
	if err := exp.WriteRow(row); err != nil {
		t.Fatalf("write row: %v", err)
	}
	exp.Close()

	data, err := os.ReadFile(filepath.Join(dir, "widgets.sql"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "INSERT INTO widgets (id, note) VALUES ('o''brien', NULL);\n"
	if string(data) != want {
		t.Fatalf("got %q, want %q", string(data), want)
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	f, err := ParseFormat("CSV")
	if err != nil || f != FormatCSV {
		t.Fatalf("expected case-insensitive csv match, got %v %v", f, err)
	}
}
