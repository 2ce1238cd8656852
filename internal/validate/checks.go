package validate

import (
	"strings"
	"time"

	"github.com/guimmamanna/synthforge/internal/generate"
	"github.com/guimmamanna/synthforge/internal/schema"
)

// checkRange reports whether value lies within col's declared [min,max],
// for the four range-bearing types. Columns without a usable range are
// considered in range (nothing to check).
func checkRange(value generate.Value, col *schema.Column) bool {
	if len(col.Range) < 2 {
		return true
	}
	switch col.Type {
	case schema.ColumnInt, schema.ColumnDecimal:
		numeric, ok := value.AsFloat()
		if !ok {
			return true
		}
		min, ok1 := toFloatAny(col.Range[0])
		max, ok2 := toFloatAny(col.Range[1])
		if !ok1 || !ok2 {
			return true
		}
		return numeric >= min && numeric <= max
	case schema.ColumnDate:
		t, ok := value.AsTime()
		if !ok {
			return true
		}
		start, end := dateBound(col.Range[0]), dateBound(col.Range[1])
		if start == nil || end == nil {
			return true
		}
		return !t.Before(*start) && !t.After(*end)
	case schema.ColumnDatetime:
		t, ok := value.AsTime()
		if !ok {
			return true
		}
		start, end := dateTimeBound(col.Range[0]), dateTimeBound(col.Range[1])
		if start == nil || end == nil {
			return true
		}
		return !t.Before(*start) && !t.After(*end)
	default:
		return true
	}
}

func toFloatAny(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func dateBound(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func dateTimeBound(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	normalized := strings.ReplaceAll(s, "Z", "+00:00")
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return &t
		}
	}
	return nil
}
