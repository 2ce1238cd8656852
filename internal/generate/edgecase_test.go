package generate

import (
	"testing"

	"github.com/guimmamanna/synthforge/internal/rng"
	"github.com/guimmamanna/synthforge/internal/schema"
)

func TestApplyEdgeCasesInvalidModeEventuallyProducesInvalidTag(t *testing.T) {
	col := &schema.Column{Name: "age", Type: schema.ColumnInt, Range: []any{18, 65}}
	r := rng.WithSeed(21)
	sawInvalid := false
	for i := 0; i < 200; i++ {
		_, tag := ApplyEdgeCases(Int(30), col, schema.ModeInvalid, r)
		if tag != nil && *tag == "invalid" {
			sawInvalid = true
			break
		}
	}
	if !sawInvalid {
		t.Fatalf("expected invalid mode to eventually tag a value invalid")
	}
}

func TestApplyEdgeCasesValidModeNeverTagsInvalid(t *testing.T) {
	col := &schema.Column{Name: "age", Type: schema.ColumnInt, Range: []any{18, 65}}
	r := rng.WithSeed(22)
	for i := 0; i < 500; i++ {
		_, tag := ApplyEdgeCases(Int(30), col, schema.ModeValid, r)
		if tag != nil && *tag == "invalid" {
			t.Fatalf("valid mode must never apply the invalid branch")
		}
	}
}

func TestApplyEdgeCasesRespectsNullableOnly(t *testing.T) {
	nullable := &schema.Column{Name: "nickname", Type: schema.ColumnText, Nullable: true}
	notNullable := &schema.Column{Name: "id", Type: schema.ColumnText, Nullable: false}
	r := rng.WithSeed(23)

	sawNull := false
	for i := 0; i < 500; i++ {
		v, tag := ApplyEdgeCases(String("x"), nullable, schema.ModeValid, r)
		if tag != nil && *tag == "null" {
			sawNull = true
			if !v.IsNull() {
				t.Fatalf("expected null tag to carry a null value")
			}
		}
	}
	if !sawNull {
		t.Fatalf("expected nullable column to eventually receive a null")
	}

	for i := 0; i < 500; i++ {
		v, _ := ApplyEdgeCases(String("x"), notNullable, schema.ModeValid, r)
		if v.IsNull() {
			t.Fatalf("non-nullable column must never receive null from the edge-case injector")
		}
	}
}

func TestBoundaryValuePicksRangeEndpoint(t *testing.T) {
	col := &schema.Column{Name: "age", Type: schema.ColumnInt, Range: []any{18, 65}}
	r := rng.WithSeed(24)
	for i := 0; i < 100; i++ {
		v := boundaryValue(Int(30), col, r)
		n, _ := v.AsFloat()
		if n != 18 && n != 65 {
			t.Fatalf("expected boundary value to be a range endpoint, got %v", n)
		}
	}
}

func TestInvalidValueEnumIsNeverAMember(t *testing.T) {
	col := &schema.Column{Name: "tier", Type: schema.ColumnEnum, Values: []string{"free", "pro"}}
	r := rng.WithSeed(25)
	v := invalidValue(col, r)
	s, _ := v.AsString()
	if s == "free" || s == "pro" {
		t.Fatalf("expected invalid enum value to not be a declared member, got %q", s)
	}
}
