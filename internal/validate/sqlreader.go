package validate

import (
	"os"
	"regexp"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/format"
)

// sqlParser is shared across calls the way the teacher's analyzer holds a
// single parser.New() for the process lifetime (internal/apply/analyzer.go)
// — the TiDB parser is safe for repeated, sequential use.
var sqlParser = parser.New()

var insertLineRe = regexp.MustCompile(`(?is)^INSERT INTO\s+(\w+)\s*\(([^)]+)\)\s*VALUES\s*\((.*)\)\s*;?\s*$`)

// loadSQLRows re-reads a SQL-format export. It first asks the TiDB parser
// to split the file into individual statements (the same
// "real parser first, manual split fallback" strategy the teacher's
// Applier uses for migration files); each statement is then restored to
// canonical text and decoded with the quote-aware literal splitter spec.md
// §4.9 describes. A file the TiDB parser cannot make sense of at all falls
// back to a manual line-oriented split, since the exporter always writes
// one INSERT per line.
func loadSQLRows(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(data)

	statements := splitStatements(content)
	rows := make([]map[string]any, 0, len(statements))
	for _, stmt := range statements {
		row := parseInsertStatement(stmt)
		if row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func splitStatements(content string) []string {
	if stmts := splitStatementsUsingTiDBParser(content); len(stmts) > 0 {
		return stmts
	}
	return splitStatementsByLine(content)
}

func splitStatementsUsingTiDBParser(content string) []string {
	nodes, _, err := sqlParser.Parse(content, "", "")
	if err != nil || len(nodes) == 0 {
		return nil
	}
	statements := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		var sb strings.Builder
		ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
		if err := node.Restore(ctx); err != nil {
			continue
		}
		if stmt := strings.TrimSpace(sb.String()); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func splitStatementsByLine(content string) []string {
	var statements []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		statements = append(statements, line)
	}
	return statements
}

// parseInsertStatement extracts column names and literal values from a
// single "INSERT INTO table (cols) VALUES (vals);" statement, returning
// nil when the statement does not match that shape.
func parseInsertStatement(stmt string) map[string]any {
	match := insertLineRe.FindStringSubmatch(stmt)
	if match == nil {
		return nil
	}
	var columns []string
	for _, c := range strings.Split(match[2], ",") {
		columns = append(columns, strings.TrimSpace(c))
	}
	values := splitSQLValues(match[3])

	row := make(map[string]any, len(columns))
	for i, col := range columns {
		if i >= len(values) {
			break
		}
		row[col] = parseSQLValue(values[i])
	}
	return row
}

// splitSQLValues splits a VALUES(...) blob on top-level commas, treating a
// doubled single quote ('') inside a quoted literal as an escaped quote
// rather than a string terminator.
func splitSQLValues(blob string) []string {
	var values []string
	var current strings.Builder
	inString := false
	for i := 0; i < len(blob); i++ {
		c := blob[i]
		switch {
		case c == '\'':
			inString = !inString
			current.WriteByte(c)
		case c == ',' && !inString:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		values = append(values, strings.TrimSpace(current.String()))
	}
	return values
}

func parseSQLValue(raw string) any {
	if strings.EqualFold(raw, "NULL") {
		return nil
	}
	if strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") && len(raw) >= 2 {
		inner := raw[1 : len(raw)-1]
		return strings.ReplaceAll(inner, "''", "'")
	}
	return raw
}
