// Package validate re-reads persisted dataset output and independently
// checks it against the schema that produced it (spec.md §4.9): the
// Validator never trusts the generator's own bookkeeping.
package validate

import (
	"fmt"
	"sort"
	"strings"
)

// TableReport is one table's slice of a ValidationReport.
type TableReport struct {
	Table              string         `json:"table"`
	RowCount           int            `json:"row_count"`
	Violations         map[string]int `json:"violations"`
	RuleViolations      int            `json:"rule_violations"`
	FailedRows          int            `json:"failed_rows"`
	ConstraintCoverage  map[string]int `json:"constraint_coverage"`
	RepairAttempts      *int           `json:"repair_attempts,omitempty"`
}

// Report is the full dataset-level validation result (spec.md §3's
// "Validation report").
type Report struct {
	Dataset             string                 `json:"dataset"`
	Mode                string                 `json:"mode"`
	TotalViolations     int                    `json:"total_violations"`
	Tables              map[string]*TableReport `json:"tables"`
	ConstraintCoverage  map[string]int         `json:"constraint_coverage"`
}

// Summary renders a compact human-readable rendition of the report,
// grounded on the teacher's internal/output summaryFormatter: a header,
// one line per table, and a violation breakdown when any are present.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Validation Summary: %s (%s)\n", r.Dataset, r.Mode)
	sb.WriteString(strings.Repeat("=", 20+len(r.Dataset)+len(r.Mode)) + "\n\n")
	fmt.Fprintf(&sb, "Total violations: %d\n\n", r.TotalViolations)

	names := make([]string, 0, len(r.Tables))
	for name := range r.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := r.Tables[name]
		fmt.Fprintf(&sb, "  %s: %d rows, %d failed", name, t.RowCount, t.FailedRows)
		if t.RepairAttempts != nil {
			fmt.Fprintf(&sb, ", %d repair attempts", *t.RepairAttempts)
		}
		sb.WriteString("\n")
		if len(t.Violations) > 0 {
			kinds := make([]string, 0, len(t.Violations))
			for k := range t.Violations {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			for _, kind := range kinds {
				fmt.Fprintf(&sb, "    - %s: %d\n", kind, t.Violations[kind])
			}
		}
		if t.RuleViolations > 0 {
			fmt.Fprintf(&sb, "    - rules: %d\n", t.RuleViolations)
		}
	}
	return sb.String()
}
