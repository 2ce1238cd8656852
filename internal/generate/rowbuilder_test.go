package generate

import (
	"testing"

	"github.com/guimmamanna/synthforge/internal/rng"
	"github.com/guimmamanna/synthforge/internal/schema"
)

func productsTable() *schema.Table {
	return &schema.Table{
		Name:        "products",
		PrimaryKey:  "id",
		ColumnOrder: []string{"id", "price", "sku"},
		Columns: map[string]*schema.Column{
			"id":    {Name: "id", Type: schema.ColumnUUID},
			"price": {Name: "price", Type: schema.ColumnDecimal, Range: []any{1.0, 100.0}},
			"sku":   {Name: "sku", Type: schema.ColumnText, Unique: true, Length: []int{4, 8}},
		},
	}
}

func ordersTable() *schema.Table {
	return &schema.Table{
		Name:        "orders",
		PrimaryKey:  "id",
		ColumnOrder: []string{"id", "product_id", "quantity"},
		Columns: map[string]*schema.Column{
			"id":         {Name: "id", Type: schema.ColumnUUID},
			"product_id": {Name: "product_id", Type: schema.ColumnUUID},
			"quantity":   {Name: "quantity", Type: schema.ColumnInt, Range: []any{1, 10}},
		},
		ForeignKeys: []schema.ForeignKey{{Column: "product_id", RefTable: "products", RefColumn: "id"}},
	}
}

func TestGenerateRowProducesEveryDeclaredColumn(t *testing.T) {
	table := productsTable()
	row := GenerateRow(table, rng.WithSeed(31), map[string][]Value{}, schema.ModeValid)
	for _, col := range table.ColumnOrder {
		if _, ok := row[col]; !ok {
			t.Fatalf("expected column %q in generated row", col)
		}
	}
}

func TestGenerateRowDrawsForeignKeyFromPool(t *testing.T) {
	table := ordersTable()
	pool := []Value{String("11111111-1111-1111-1111-111111111111")}
	r := rng.WithSeed(32)
	for i := 0; i < 50; i++ {
		row := GenerateRow(table, r, map[string][]Value{"products": pool}, schema.ModeValid)
		if !row["product_id"].Equal(pool[0]) {
			t.Fatalf("expected FK draw to come from the pool, got %v", row["product_id"])
		}
	}
}

func TestGenerateRowInvalidModeCanBreakForeignKey(t *testing.T) {
	table := ordersTable()
	pool := []Value{String("11111111-1111-1111-1111-111111111111")}
	r := rng.WithSeed(33)
	sawBroken := false
	for i := 0; i < 500; i++ {
		row := GenerateRow(table, r, map[string][]Value{"products": pool}, schema.ModeInvalid)
		if !containsValue(pool, row["product_id"]) {
			sawBroken = true
			break
		}
	}
	if !sawBroken {
		t.Fatalf("expected invalid mode to eventually break a foreign key reference")
	}
}

func TestRowValidRejectsDuplicateUniqueColumn(t *testing.T) {
	table := productsTable()
	unique := NewUniqueSets(table)
	pkSet := map[string]bool{}
	pkPools := map[string][]Value{}

	row := Row{"id": String("id-1"), "price": Float(10), "sku": String("ABCD")}
	if !RowValid(row, table, unique, pkSet, pkPools, nil) {
		t.Fatalf("expected first row to be valid")
	}
	RegisterUniques(row, table, unique, pkSet, pkPools)

	dup := Row{"id": String("id-2"), "price": Float(10), "sku": String("ABCD")}
	if RowValid(dup, table, unique, pkSet, pkPools, nil) {
		t.Fatalf("expected duplicate unique sku to be rejected")
	}
}

func TestRowValidRejectsOutOfRangeAndBadForeignKey(t *testing.T) {
	table := ordersTable()
	unique := NewUniqueSets(table)
	pkSet := map[string]bool{}
	pkPools := map[string][]Value{"products": {String("known-id")}}

	badRange := Row{"id": String("o-1"), "product_id": String("known-id"), "quantity": Int(99)}
	if RowValid(badRange, table, unique, pkSet, pkPools, nil) {
		t.Fatalf("expected out-of-range quantity to be rejected")
	}

	badFK := Row{"id": String("o-2"), "product_id": String("missing-id"), "quantity": Int(5)}
	if RowValid(badFK, table, unique, pkSet, pkPools, nil) {
		t.Fatalf("expected unknown foreign key reference to be rejected")
	}
}

func TestRegisterUniquesAddsPrimaryKeyToPool(t *testing.T) {
	table := productsTable()
	unique := NewUniqueSets(table)
	pkSet := map[string]bool{}
	pkPools := map[string][]Value{}

	row := Row{"id": String("p-1"), "price": Float(5), "sku": String("WXYZ")}
	RegisterUniques(row, table, unique, pkSet, pkPools)

	if !pkSet["s:p-1"] {
		t.Fatalf("expected primary key to be registered in pkSet")
	}
	if len(pkPools["products"]) != 1 {
		t.Fatalf("expected primary key to be appended to the products pool")
	}
}
