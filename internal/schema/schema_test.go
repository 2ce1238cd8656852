package schema

import "testing"

func simpleSchema() *Schema {
	return &Schema{
		Dataset: Dataset{Name: "demo", Seed: 1, Mode: ModeValid, MaxAttempts: 5},
		Tables: map[string]*Table{
			"users": {
				Name:       "users",
				PrimaryKey: "id",
				Columns: map[string]*Column{
					"id": {Name: "id", Type: ColumnUUID},
				},
			},
		},
		TableOrder: []string{"users"},
	}
}

func TestValidateAcceptsWellFormedSchema(t *testing.T) {
	if err := simpleSchema().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsMissingPrimaryKey(t *testing.T) {
	s := simpleSchema()
	s.Tables["users"].PrimaryKey = "missing"
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for missing primary key column")
	}
}

func TestValidateRejectsUnknownColumnType(t *testing.T) {
	s := simpleSchema()
	s.Tables["users"].Columns["id"].Type = "bogus"
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for unknown column type")
	}
}

func TestValidateRejectsUndeclaredForeignKeyTable(t *testing.T) {
	s := simpleSchema()
	s.Tables["users"].ForeignKeys = []ForeignKey{{Column: "id", RefTable: "ghost", RefColumn: "id"}}
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for foreign key referencing undeclared table")
	}
}

func TestValidateRejectsEmptyTableSet(t *testing.T) {
	s := &Schema{Dataset: Dataset{Name: "demo", Mode: ModeValid, MaxAttempts: 1}, Tables: map[string]*Table{}}
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for schema with no tables")
	}
}

func TestRowCountDefaultsToTen(t *testing.T) {
	s := simpleSchema()
	if got := s.RowCount("users"); got != 10 {
		t.Fatalf("expected default row count 10, got %d", got)
	}
	s.Dataset.Size = map[string]int{"users": 42}
	if got := s.RowCount("users"); got != 42 {
		t.Fatalf("expected configured row count 42, got %d", got)
	}
}
