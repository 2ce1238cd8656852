// Package export writes generated rows to disk in one of three formats.
// The factory and per-format writer split follows the teacher's
// internal/output formatter package: one small interface, one constructor
// that switches on a Format string, one file per concrete format.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/guimmamanna/synthforge/internal/generate"
)

// Format identifies an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatSQL  Format = "sql"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatJSON, FormatSQL:
		return f, nil
	default:
		return "", fmt.Errorf("export: unsupported format %q; use csv, json, or sql", name)
	}
}

// Exporter writes a table's rows one at a time in declared column order.
type Exporter interface {
	WriteRow(row generate.Row) error
	Close() error
}

// New opens the exporter for table in outDir, naming the file the way the
// Validator's re-read path expects (TablePath mirrors this exactly).
func New(format Format, outDir, table string, columns []string) (Exporter, error) {
	path := TablePath(outDir, table, format)
	switch format {
	case FormatCSV:
		return newCSVExporter(path, columns)
	case FormatJSON:
		return newJSONExporter(path, columns)
	case FormatSQL:
		return newSQLExporter(path, table, columns)
	default:
		return nil, fmt.Errorf("export: unsupported format %q", format)
	}
}

// TablePath returns the on-disk path a table's output lives at for format.
func TablePath(outDir, table string, format Format) string {
	switch format {
	case FormatCSV:
		return filepath.Join(outDir, table+".csv")
	case FormatJSON:
		return filepath.Join(outDir, table+".jsonl")
	case FormatSQL:
		return filepath.Join(outDir, table+".sql")
	default:
		return filepath.Join(outDir, table)
	}
}
