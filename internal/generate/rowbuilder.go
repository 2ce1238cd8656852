package generate

import (
	"regexp"

	"github.com/guimmamanna/synthforge/internal/rng"
	"github.com/guimmamanna/synthforge/internal/rules"
	"github.com/guimmamanna/synthforge/internal/safeexpr"
	"github.com/guimmamanna/synthforge/internal/schema"
)

// Row is a single generated record, keyed by column name.
type Row map[string]Value

// fkInvalidProb is the probability, in invalid mode, that a foreign-key
// column gets a deliberately broken reference instead of a pool draw
// (spec.md §4.7 step 1).
const fkInvalidProb = 0.20

// GenerateRow builds one candidate row for table, drawing foreign keys from
// pkPools and everything else from the value primitives followed by the
// edge-case injector.
func GenerateRow(table *schema.Table, r *rng.Rng, pkPools map[string][]Value, mode schema.Mode) Row {
	row := make(Row, len(table.Columns))
	for _, colName := range columnNames(table) {
		col := table.Columns[colName]
		value := generateValue(table, col, r, pkPools, mode)
		if _, isFK := table.ForeignKeyFor(colName); !isFK {
			value, _ = ApplyEdgeCases(value, col, mode, r)
		}
		row[colName] = value
	}
	return row
}

func columnNames(table *schema.Table) []string {
	if len(table.ColumnOrder) > 0 {
		return table.ColumnOrder
	}
	names := make([]string, 0, len(table.Columns))
	for name := range table.Columns {
		names = append(names, name)
	}
	return names
}

func generateValue(table *schema.Table, col *schema.Column, r *rng.Rng, pkPools map[string][]Value, mode schema.Mode) Value {
	if fk, ok := table.ForeignKeyFor(col.Name); ok {
		if mode == schema.ModeInvalid && r.Float64() < fkInvalidProb {
			return String("invalid_fk")
		}
		pool := pkPools[fk.RefTable]
		if len(pool) > 0 {
			return rng.Choice(r, pool)
		}
		return Null()
	}

	switch col.Type {
	case schema.ColumnUUID:
		return String(GenerateUUID(r))
	case schema.ColumnInt:
		return Int(GenerateInt(r, col.Range, col.Distribution))
	case schema.ColumnDecimal:
		return Float(GenerateDecimal(r, col.Range, col.Distribution))
	case schema.ColumnBool:
		return Bool(GenerateBool(r))
	case schema.ColumnDatetime:
		start, end := ParseDateTimeRange(col.Range)
		return DateTime(GenerateDateTime(r, start, end))
	case schema.ColumnDate:
		start, end := ParseDateRange(col.Range)
		return Date(GenerateDate(r, start, end))
	case schema.ColumnEnum:
		return String(GenerateEnum(r, col.Values, col.Weights))
	case schema.ColumnText:
		if col.Regex != "" {
			return String(GenerateTextFromRegex(r, col.Regex))
		}
		minLen, maxLen := LengthRange(col.Length)
		return String(GenerateText(r, minLen, maxLen))
	case schema.ColumnEmail:
		return String(GenerateEmail(r))
	case schema.ColumnPhone:
		return String(GeneratePhone(r))
	case schema.ColumnCountry:
		return String(GenerateCountry(r))
	case schema.ColumnPostcodeUK:
		return String(GeneratePostcodeUK(r))
	case schema.ColumnName:
		return String(GenerateName(r))
	default:
		return Null()
	}
}

// UniqueSets tracks, per unique column, the hash keys of values already
// accepted this table run.
type UniqueSets map[string]map[string]bool

func NewUniqueSets(table *schema.Table) UniqueSets {
	sets := make(UniqueSets)
	for name, col := range table.Columns {
		if col.Unique {
			sets[name] = make(map[string]bool)
		}
	}
	return sets
}

// RowValid is the local validator the repair loop consults: spec.md §4.7
// step 3, checks (a) through (h) in order, short-circuiting on the first
// failure.
func RowValid(row Row, table *schema.Table, unique UniqueSets, pkSet map[string]bool, pkPools map[string][]Value, schemaRules []schema.Rule) bool {
	for _, colName := range columnNames(table) {
		col := table.Columns[colName]
		value := row[colName]

		if value.IsNull() {
			if !col.Nullable {
				return false
			}
			continue
		}
		if col.Unique && unique[colName][value.HashKey()] {
			return false
		}
		if colName == table.PrimaryKey && pkSet[value.HashKey()] {
			return false
		}
		if col.Type == schema.ColumnEnum && len(col.Values) > 0 && !containsString(col.Values, mustString(value)) {
			return false
		}
		if (col.Type == schema.ColumnInt || col.Type == schema.ColumnDecimal) && len(col.Range) >= 2 {
			numeric, ok := value.AsFloat()
			if !ok {
				return false
			}
			min, ok1 := toFloat(col.Range[0])
			max, ok2 := toFloat(col.Range[1])
			if ok1 && ok2 && (numeric < min || numeric > max) {
				return false
			}
		}
		if col.Type == schema.ColumnText && col.Regex != "" {
			matched, err := regexp.MatchString("^(?:"+col.Regex+")$", mustString(value))
			if err != nil || !matched {
				return false
			}
		}
		if fk, ok := table.ForeignKeyFor(colName); ok {
			if !containsValue(pkPools[fk.RefTable], value) {
				return false
			}
		}
	}

	ctx := safeexpr.Context{table.Name: rowToRawMap(row)}
	if len(rules.Evaluate(schemaRules, ctx)) > 0 {
		return false
	}
	return true
}

// RegisterUniques records an accepted row's primary key and unique-column
// values, the only mutation path the orchestrator grants the row builder.
func RegisterUniques(row Row, table *schema.Table, unique UniqueSets, pkSet map[string]bool, pkPools map[string][]Value) {
	if pk := row[table.PrimaryKey]; !pk.IsNull() {
		pkSet[pk.HashKey()] = true
		pkPools[table.Name] = append(pkPools[table.Name], pk)
	}
	for colName, seen := range unique {
		if v := row[colName]; !v.IsNull() {
			seen[v.HashKey()] = true
		}
	}
}

func rowToRawMap(row Row) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v.Raw()
	}
	return out
}

func containsString(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}

func containsValue(pool []Value, v Value) bool {
	for _, item := range pool {
		if item.Equal(v) {
			return true
		}
	}
	return false
}

func mustString(v Value) string {
	s, _ := v.AsString()
	return s
}
