package export

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/guimmamanna/synthforge/internal/generate"
)

type sqlExporter struct {
	file    *os.File
	writer  *bufio.Writer
	table   string
	columns []string
}

func newSQLExporter(path, table string, columns []string) (Exporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("export: create %q: %w", path, err)
	}
	return &sqlExporter{file: f, writer: bufio.NewWriter(f), table: table, columns: columns}, nil
}

func (e *sqlExporter) WriteRow(row generate.Row) error {
	values := make([]string, len(e.columns))
	for i, col := range e.columns {
		values[i] = sqlLiteral(row[col].Serialize())
	}
	line := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);\n", e.table, strings.Join(e.columns, ", "), strings.Join(values, ", "))
	_, err := e.writer.WriteString(line)
	return err
}

func sqlLiteral(v any) string {
	if v == nil {
		return "NULL"
	}
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	default:
		text := strings.ReplaceAll(fmt.Sprint(v), "'", "''")
		return "'" + text + "'"
	}
}

func (e *sqlExporter) Close() error {
	if err := e.writer.Flush(); err != nil {
		e.file.Close()
		return err
	}
	return e.file.Close()
}
