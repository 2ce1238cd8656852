package generate

import (
	"testing"
	"time"
)

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() || v.Kind() != KindNull {
		t.Fatalf("expected zero Value to be null, got kind %d", v.Kind())
	}
}

func TestAsFloatWidensIntAndFloat(t *testing.T) {
	if f, ok := Int(3).AsFloat(); !ok || f != 3 {
		t.Fatalf("expected Int to widen to float, got %v, %v", f, ok)
	}
	if f, ok := Float(2.5).AsFloat(); !ok || f != 2.5 {
		t.Fatalf("expected Float to pass through, got %v, %v", f, ok)
	}
	if _, ok := String("x").AsFloat(); ok {
		t.Fatalf("expected String to reject AsFloat")
	}
}

func TestHashKeyDistinguishesKindsAndPayloads(t *testing.T) {
	keys := map[string]bool{}
	values := []Value{
		Null(), Int(1), Int(2), Float(1), Bool(true), Bool(false),
		String("1"), Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		DateTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	for _, v := range values {
		k := v.HashKey()
		if keys[k] {
			t.Fatalf("hash key collision for %+v: %q", v, k)
		}
		keys[k] = true
	}
}

func TestEqualRequiresSameKindAndPayload(t *testing.T) {
	if !Int(5).Equal(Int(5)) {
		t.Fatalf("expected equal ints to be Equal")
	}
	if Int(5).Equal(Float(5)) {
		t.Fatalf("expected different kinds to never be Equal")
	}
	a := Date(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	b := Date(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if !a.Equal(b) {
		t.Fatalf("expected dates for the same day to be Equal")
	}
}

func TestSerializeRendersDatesAsISO8601(t *testing.T) {
	d := Date(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	if got := d.Serialize(); got != "2024-03-05" {
		t.Fatalf("expected ISO date, got %v", got)
	}
	dt := DateTime(time.Date(2024, 3, 5, 13, 30, 0, 0, time.UTC))
	if got := dt.Serialize(); got != "2024-03-05T13:30:00" {
		t.Fatalf("expected ISO datetime, got %v", got)
	}
	if Null().Serialize() != nil {
		t.Fatalf("expected null to serialize to nil")
	}
}

func TestRawUnwrapsUnderlyingPayload(t *testing.T) {
	if Int(7).Raw() != int64(7) {
		t.Fatalf("expected Raw to return int64")
	}
	if Bool(true).Raw() != true {
		t.Fatalf("expected Raw to return bool")
	}
}
