// Package schema holds the canonical, immutable-after-load representation
// of a dataset schema: the frozen input spec.md §3 describes. It is the
// single source of truth every other package reads from, mirroring the
// role the teacher's internal/core package plays for a SQL schema.
package schema

import "fmt"

// ColumnType enumerates the supported column types (spec.md §3).
type ColumnType string

const (
	ColumnUUID       ColumnType = "uuid"
	ColumnInt        ColumnType = "int"
	ColumnDecimal    ColumnType = "decimal"
	ColumnDatetime   ColumnType = "datetime"
	ColumnDate       ColumnType = "date"
	ColumnBool       ColumnType = "bool"
	ColumnEnum       ColumnType = "enum"
	ColumnText       ColumnType = "text"
	ColumnEmail      ColumnType = "email"
	ColumnPhone      ColumnType = "phone"
	ColumnCountry    ColumnType = "country"
	ColumnPostcodeUK ColumnType = "postcode_uk"
	ColumnName       ColumnType = "name"
)

var validColumnTypes = map[ColumnType]bool{
	ColumnUUID: true, ColumnInt: true, ColumnDecimal: true, ColumnDatetime: true,
	ColumnDate: true, ColumnBool: true, ColumnEnum: true, ColumnText: true,
	ColumnEmail: true, ColumnPhone: true, ColumnCountry: true, ColumnPostcodeUK: true,
	ColumnName: true,
}

// ValidColumnType reports whether t is a recognized column type.
func ValidColumnType(t ColumnType) bool {
	return validColumnTypes[t]
}

// Distribution enumerates the supported numeric distribution families.
type Distribution string

const (
	DistUniform    Distribution = "uniform"
	DistNormal     Distribution = "normal"
	DistLognormal  Distribution = "lognormal"
	DistCategorial Distribution = "categorical"
)

// Column is a single column's declarative constraints (spec.md §3).
type Column struct {
	Name         string       `json:"name" yaml:"name"`
	Type         ColumnType   `json:"type" yaml:"type"`
	Nullable     bool         `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Unique       bool         `json:"unique,omitempty" yaml:"unique,omitempty"`
	Range        []any        `json:"range,omitempty" yaml:"range,omitempty"`
	Regex        string       `json:"regex,omitempty" yaml:"regex,omitempty"`
	Values       []string     `json:"values,omitempty" yaml:"values,omitempty"`
	Weights      []float64    `json:"weights,omitempty" yaml:"weights,omitempty"`
	Distribution Distribution `json:"distribution,omitempty" yaml:"distribution,omitempty"`
	Length       []int        `json:"length,omitempty" yaml:"length,omitempty"`
	PII          bool         `json:"pii,omitempty" yaml:"pii,omitempty"`
}

// ForeignKey is a (column, ref_table, ref_column) triple (spec.md §3).
type ForeignKey struct {
	Column    string `json:"column" yaml:"column"`
	RefTable  string `json:"ref_table" yaml:"ref_table"`
	RefColumn string `json:"ref_column" yaml:"ref_column"`
}

// Table is a single table's spec: name, primary key, columns, foreign keys.
type Table struct {
	Name        string             `json:"name" yaml:"name"`
	PrimaryKey  string             `json:"primary_key" yaml:"primary_key"`
	Columns     map[string]*Column `json:"columns" yaml:"columns"`
	ColumnOrder []string           `json:"-" yaml:"-"`
	ForeignKeys []ForeignKey       `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
}

// ForeignKeyFor returns the foreign key declared on the given column, if any.
func (t *Table) ForeignKeyFor(column string) (ForeignKey, bool) {
	for _, fk := range t.ForeignKeys {
		if fk.Column == column {
			return fk, true
		}
	}
	return ForeignKey{}, false
}

// Rule is a conditional cross-row constraint: if If is true, every entry in
// Then must also be true (spec.md §3).
type Rule struct {
	If   string   `json:"if" yaml:"if"`
	Then []string `json:"then" yaml:"then"`
}

// Mode is the dataset-wide generation switch (spec.md §3).
type Mode string

const (
	ModeValid   Mode = "valid"
	ModeInvalid Mode = "invalid"
)

// Dataset carries the run-level metadata spec.md §3 lists: name, seed,
// mode, per-table target row count, and the repair attempt cap.
type Dataset struct {
	Name        string         `json:"name" yaml:"name"`
	Seed        int64          `json:"seed" yaml:"seed"`
	Mode        Mode           `json:"mode" yaml:"mode"`
	Size        map[string]int `json:"size" yaml:"size"`
	MaxAttempts int            `json:"max_attempts" yaml:"max_attempts"`
}

// Schema is the frozen input: dataset metadata, an ordered table mapping,
// and an ordered rule list (spec.md §3).
type Schema struct {
	Dataset    Dataset           `json:"dataset" yaml:"dataset"`
	Tables     map[string]*Table `json:"tables" yaml:"tables"`
	TableOrder []string          `json:"-" yaml:"-"`
	Rules      []Rule            `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// RowCount returns the configured row count for a table, defaulting to 10
// the way the original implementation's dict.get(table, 10) did.
func (s *Schema) RowCount(table string) int {
	if n, ok := s.Dataset.Size[table]; ok {
		return n
	}
	return 10
}

// ValidationError reports a structural problem found while validating a
// loaded Schema. It is a distinct type from plan.DependencyError so callers
// can distinguish "malformed schema" from "unsatisfiable dependency graph"
// per spec.md §7's error-kind taxonomy.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validate runs the structural invariants spec.md §3 requires, in a single
// chained pass that returns the first failure — grounded on the teacher's
// Database.Validate() chain-of-checks style (internal/core/validate.go).
// It checks that each foreign-key column is declared and that each
// referenced table exists, but not dependency ordering or cycles; those are
// the Dependency Planner's responsibility (spec.md §4.6) since they require
// building the full cross-table graph.
func (s *Schema) Validate() error {
	if err := s.validateDataset(); err != nil {
		return err
	}
	if len(s.Tables) == 0 {
		return validationErrf("schema declares no tables")
	}
	for _, name := range s.TableOrder {
		table := s.Tables[name]
		if err := table.validate(name); err != nil {
			return err
		}
		for _, fk := range table.ForeignKeys {
			if _, ok := s.Tables[fk.RefTable]; !ok {
				return validationErrf("table %q: foreign key %q references undeclared table %q", name, fk.Column, fk.RefTable)
			}
		}
	}
	return nil
}

func (s *Schema) validateDataset() error {
	if s.Dataset.Name == "" {
		return validationErrf("dataset name is required")
	}
	if s.Dataset.Mode != ModeValid && s.Dataset.Mode != ModeInvalid {
		return validationErrf("dataset mode must be %q or %q, got %q", ModeValid, ModeInvalid, s.Dataset.Mode)
	}
	if s.Dataset.MaxAttempts <= 0 {
		return validationErrf("dataset max_attempts must be positive, got %d", s.Dataset.MaxAttempts)
	}
	return nil
}

func (t *Table) validate(name string) error {
	if len(t.Columns) == 0 {
		return validationErrf("table %q has no columns", name)
	}
	if _, ok := t.Columns[t.PrimaryKey]; !ok {
		return validationErrf("table %q: primary key %q is not a declared column", name, t.PrimaryKey)
	}
	for colName, col := range t.Columns {
		if !ValidColumnType(col.Type) {
			return validationErrf("table %q column %q: unknown column type %q", name, colName, col.Type)
		}
	}
	for _, fk := range t.ForeignKeys {
		if _, ok := t.Columns[fk.Column]; !ok {
			return validationErrf("table %q: foreign key column %q is not a declared column", name, fk.Column)
		}
	}
	return nil
}
