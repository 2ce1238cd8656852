package validate

import (
	"regexp"

	"github.com/guimmamanna/synthforge/internal/export"
	"github.com/guimmamanna/synthforge/internal/rules"
	"github.com/guimmamanna/synthforge/internal/safeexpr"
	"github.com/guimmamanna/synthforge/internal/schema"
)

var regexFamily = map[schema.ColumnType]bool{
	schema.ColumnText: true, schema.ColumnEmail: true, schema.ColumnPhone: true,
	schema.ColumnPostcodeUK: true, schema.ColumnName: true,
}

// Validate re-reads every table's persisted output under outDir and
// produces an independent violation report (spec.md §4.9). It never
// consults any in-memory bookkeeping from the generation run that produced
// the files; everything it knows comes from the files themselves and s.
func Validate(s *schema.Schema, outDir string, format export.Format) (*Report, error) {
	tableRows := make(map[string][]map[string]any, len(s.Tables))
	for name := range s.Tables {
		rows, err := loadRows(outDir, name, format)
		if err != nil {
			return nil, err
		}
		tableRows[name] = rows
	}

	pkSets := make(map[string]map[string]bool, len(s.Tables))
	for name, rows := range tableRows {
		pkSets[name] = collectPK(s.Tables[name], rows)
	}

	tableReports := make(map[string]*TableReport, len(s.Tables))
	totalViolations := 0
	aggregateCoverage := make(map[string]int)

	for name, rows := range tableRows {
		report := validateTable(s.Tables[name], rows, pkSets, s.Rules)
		tableReports[name] = report
		for _, count := range report.Violations {
			totalViolations += count
		}
		totalViolations += report.RuleViolations
		for kind, count := range report.ConstraintCoverage {
			aggregateCoverage[kind] += count
		}
	}

	return &Report{
		Dataset:            s.Dataset.Name,
		Mode:               string(s.Dataset.Mode),
		TotalViolations:    totalViolations,
		Tables:             tableReports,
		ConstraintCoverage: aggregateCoverage,
	}, nil
}

func collectPK(table *schema.Table, rows []map[string]any) map[string]bool {
	col := table.Columns[table.PrimaryKey]
	set := make(map[string]bool, len(rows))
	if col == nil {
		return set
	}
	for _, row := range rows {
		value, typeErr := coerce(row[table.PrimaryKey], col)
		if !value.IsNull() && !typeErr {
			set[value.HashKey()] = true
		}
	}
	return set
}

func validateTable(table *schema.Table, rows []map[string]any, pkSets map[string]map[string]bool, schemaRules []schema.Rule) *TableReport {
	violations := map[string]int{}
	coverage := map[string]int{}
	unique := make(map[string]map[string]bool, len(table.Columns))
	for name, col := range table.Columns {
		if col.Unique {
			unique[name] = make(map[string]bool)
		}
	}

	failedRows := 0
	ruleViolations := 0

	for _, row := range rows {
		rowFailed := false
		parsed := make(map[string]any, len(table.Columns))

		for colName, col := range table.Columns {
			coverage["type"]++
			value, typeErr := coerce(row[colName], col)
			parsed[colName] = value.Raw()

			if value.IsNull() {
				coverage["nullable"]++
				if !col.Nullable {
					violations["nullability"]++
					rowFailed = true
				}
				continue
			}
			if typeErr {
				violations["type"]++
				rowFailed = true
				continue
			}

			if len(col.Range) >= 2 && (col.Type == schema.ColumnInt || col.Type == schema.ColumnDecimal ||
				col.Type == schema.ColumnDate || col.Type == schema.ColumnDatetime) {
				coverage["range"]++
				if !checkRange(value, col) {
					violations["range"]++
					rowFailed = true
				}
			}

			if col.Regex != "" && regexFamily[col.Type] {
				coverage["regex"]++
				text, _ := value.AsString()
				matched, err := regexp.MatchString("^(?:"+col.Regex+")$", text)
				if err != nil || !matched {
					violations["regex"]++
					rowFailed = true
				}
			}

			if len(col.Values) > 0 && col.Type == schema.ColumnEnum {
				coverage["enum"]++
				text, _ := value.AsString()
				if !containsString(col.Values, text) {
					violations["enum"]++
					rowFailed = true
				}
			}

			if col.Unique {
				coverage["unique"]++
				key := value.HashKey()
				if unique[colName][key] {
					violations["unique"]++
					rowFailed = true
				}
				unique[colName][key] = true
			}

			if fk, ok := table.ForeignKeyFor(colName); ok {
				coverage["foreign_key"]++
				if !pkSets[fk.RefTable][value.HashKey()] {
					violations["foreign_key"]++
					rowFailed = true
				}
			}
		}

		coverage["rules"]++
		ctx := safeexpr.Context{table.Name: parsed}
		if len(rules.Evaluate(schemaRules, ctx)) > 0 {
			ruleViolations++
			rowFailed = true
		}

		if rowFailed {
			failedRows++
		}
	}

	return &TableReport{
		Table:              table.Name,
		RowCount:           len(rows),
		Violations:         violations,
		RuleViolations:     ruleViolations,
		FailedRows:         failedRows,
		ConstraintCoverage: coverage,
	}
}

func containsString(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}
