package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/guimmamanna/synthforge/internal/generate"
)

type csvExporter struct {
	file    *os.File
	writer  *csv.Writer
	columns []string
}

func newCSVExporter(path string, columns []string) (Exporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("export: create %q: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: write header for %q: %w", path, err)
	}
	return &csvExporter{file: f, writer: w, columns: columns}, nil
}

func (e *csvExporter) WriteRow(row generate.Row) error {
	record := make([]string, len(e.columns))
	for i, col := range e.columns {
		record[i] = serializeCSVCell(row[col].Serialize())
	}
	return e.writer.Write(record)
}

func serializeCSVCell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func (e *csvExporter) Close() error {
	e.writer.Flush()
	if err := e.writer.Error(); err != nil {
		e.file.Close()
		return err
	}
	return e.file.Close()
}
