package validate

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/guimmamanna/synthforge/internal/generate"
	"github.com/guimmamanna/synthforge/internal/schema"
)

// coerce parses a raw re-read field (a string or nil from CSV and SQL; JSONL
// can also yield float64 and bool, which are rendered back to text first)
// into a typed Value for the column it belongs to. The bool result
// is true when the raw text could not be parsed as the declared type —
// distinct from the value simply being absent/null.
func coerce(raw any, col *schema.Column) (generate.Value, bool) {
	if raw == nil {
		return generate.Null(), false
	}
	text, isString := raw.(string)
	if isString {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || trimmed == "NULL" || trimmed == "null" {
			return generate.Null(), false
		}
	}

	switch col.Type {
	case schema.ColumnUUID:
		s := asString(raw)
		if _, err := uuid.Parse(s); err != nil {
			return generate.String(s), true
		}
		return generate.String(s), false
	case schema.ColumnInt:
		n, err := strconv.ParseInt(strings.TrimSpace(asString(raw)), 10, 64)
		if err != nil {
			return generate.Null(), true
		}
		return generate.Int(n), false
	case schema.ColumnDecimal:
		f, err := strconv.ParseFloat(strings.TrimSpace(asString(raw)), 64)
		if err != nil {
			return generate.Null(), true
		}
		return generate.Float(f), false
	case schema.ColumnBool:
		s := strings.ToLower(strings.TrimSpace(asString(raw)))
		switch s {
		case "true", "1":
			return generate.Bool(true), false
		case "false", "0":
			return generate.Bool(false), false
		default:
			return generate.String(asString(raw)), true
		}
	case schema.ColumnDatetime:
		t, err := parseDateTime(asString(raw))
		if err != nil {
			return generate.Null(), true
		}
		return generate.DateTime(t), false
	case schema.ColumnDate:
		t, err := time.Parse("2006-01-02", strings.TrimSpace(asString(raw)))
		if err != nil {
			return generate.Null(), true
		}
		return generate.Date(t), false
	default:
		return generate.String(asString(raw)), false
	}
}

func parseDateTime(text string) (time.Time, error) {
	normalized := strings.ReplaceAll(text, "Z", "+00:00")
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, strconv.ErrSyntax
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	default:
		return strconvFormat(v)
	}
}

func strconvFormat(v any) string {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	default:
		return ""
	}
}
