package generate

import (
	"strings"

	"github.com/guimmamanna/synthforge/internal/rng"
	"github.com/guimmamanna/synthforge/internal/schema"
)

const (
	invalidProb     = 0.25
	validNullProb   = 0.10
	validBoundaryProb = 0.15
)

// ApplyEdgeCases is the single place allowed to emit null or a
// constraint-violating value (spec.md §4.4). It is applied to every
// non-foreign-key value the row builder produces, in priority order:
// deliberately invalid (invalid mode only), then null, then boundary, then
// passthrough. The returned tag records which branch fired, for callers
// that want to log or count edge-case shapes; it is nil on passthrough.
func ApplyEdgeCases(value Value, col *schema.Column, mode schema.Mode, r *rng.Rng) (Value, *string) {
	invalidTag := "invalid"
	nullTag := "null"
	boundaryTag := "boundary"

	if mode == schema.ModeInvalid && r.Float64() < invalidProb {
		return invalidValue(col, r), &invalidTag
	}
	if col.Nullable && r.Float64() < validNullProb {
		return Null(), &nullTag
	}
	if r.Float64() < validBoundaryProb {
		return boundaryValue(value, col, r), &boundaryTag
	}
	return value, nil
}

func boundaryValue(value Value, col *schema.Column, r *rng.Rng) Value {
	switch col.Type {
	case schema.ColumnInt, schema.ColumnDecimal:
		if len(col.Range) >= 2 {
			endpoint := col.Range[0]
			if r.Float64() >= 0.5 {
				endpoint = col.Range[1]
			}
			f, ok := toFloat(endpoint)
			if !ok {
				return value
			}
			if col.Type == schema.ColumnInt {
				return Int(int64(f))
			}
			return Float(f)
		}
	case schema.ColumnDate:
		if len(col.Range) >= 2 {
			start, end := ParseDateRange(col.Range)
			if start != nil && end != nil {
				if r.Float64() < 0.5 {
					return Date(*start)
				}
				return Date(*end)
			}
		}
	case schema.ColumnDatetime:
		if len(col.Range) >= 2 {
			start, end := ParseDateTimeRange(col.Range)
			if start != nil && end != nil {
				if r.Float64() < 0.5 {
					return DateTime(*start)
				}
				return DateTime(*end)
			}
		}
	case schema.ColumnText:
		if len(col.Length) >= 2 {
			target := col.Length[0]
			if r.Float64() >= 0.5 {
				target = col.Length[1]
			}
			text, _ := value.AsString()
			if len(text) >= target {
				return String(text[:target])
			}
			return String(text + strings.Repeat("x", target-len(text)))
		}
	case schema.ColumnEnum:
		if len(col.Values) > 0 {
			if r.Float64() < 0.5 {
				return String(col.Values[0])
			}
			return String(col.Values[len(col.Values)-1])
		}
	}
	return value
}

func invalidValue(col *schema.Column, r *rng.Rng) Value {
	switch col.Type {
	case schema.ColumnInt, schema.ColumnDecimal:
		if len(col.Range) >= 2 {
			if f, ok := toFloat(col.Range[1]); ok {
				return Float(f + 9999)
			}
		}
		return String("not_a_number")
	case schema.ColumnDate, schema.ColumnDatetime:
		return String("not_a_date")
	case schema.ColumnBool:
		return String("not_bool")
	case schema.ColumnEnum:
		return String("INVALID_ENUM")
	case schema.ColumnUUID:
		return String("not-a-uuid")
	case schema.ColumnEmail:
		return String("invalid-email")
	case schema.ColumnPhone:
		return String("invalid-phone")
	case schema.ColumnCountry:
		return String("Atlantis")
	case schema.ColumnPostcodeUK:
		return String("INVALID")
	case schema.ColumnName:
		return String("")
	case schema.ColumnText:
		if col.Regex != "" {
			return String("!!!")
		}
		if len(col.Length) > 0 {
			return String("")
		}
	}
	_ = r
	return String("invalid")
}
