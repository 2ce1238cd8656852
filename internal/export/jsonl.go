package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/guimmamanna/synthforge/internal/generate"
)

type jsonExporter struct {
	file    *os.File
	writer  *bufio.Writer
	columns []string
}

func newJSONExporter(path string, columns []string) (Exporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("export: create %q: %w", path, err)
	}
	return &jsonExporter{file: f, writer: bufio.NewWriter(f), columns: columns}, nil
}

func (e *jsonExporter) WriteRow(row generate.Row) error {
	payload := make(map[string]any, len(e.columns))
	for _, col := range e.columns {
		payload[col] = row[col].Serialize()
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := e.writer.Write(encoded); err != nil {
		return err
	}
	return e.writer.WriteByte('\n')
}

func (e *jsonExporter) Close() error {
	if err := e.writer.Flush(); err != nil {
		e.file.Close()
		return err
	}
	return e.file.Close()
}
