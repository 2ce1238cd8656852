package validate

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/guimmamanna/synthforge/internal/export"
)

// loadRows re-reads a table's persisted output using the inverse of its
// exporter (spec.md §4.9): CSV rows by header, JSONL one object per line,
// SQL by parsing INSERT statements. A missing file yields zero rows rather
// than an error, matching a dataset where a table had no rows to emit.
func loadRows(outDir, table string, format export.Format) ([]map[string]any, error) {
	path := export.TablePath(outDir, table, format)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	switch format {
	case export.FormatCSV:
		return loadCSVRows(path)
	case export.FormatJSON:
		return loadJSONRows(path)
	case export.FormatSQL:
		return loadSQLRows(path)
	default:
		return nil, fmt.Errorf("validate: unsupported format %q", format)
	}
}

func loadCSVRows(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		if err.Error() == "EOF" {
			return nil, nil
		}
		return nil, err
	}

	var rows []map[string]any
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func loadJSONRows(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []map[string]any
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var row map[string]any
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, fmt.Errorf("validate: parse jsonl line: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, scanner.Err()
}
