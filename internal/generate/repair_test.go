package generate

import "testing"

func TestRepairLoopSucceedsOnFirstValidAttempt(t *testing.T) {
	calls := 0
	result := RepairLoop(
		func() Row { calls++; return Row{"v": Int(int64(calls))} },
		func(r Row) bool { return true },
		5,
	)
	if !result.Success || result.Attempts != 1 {
		t.Fatalf("expected immediate success, got %+v", result)
	}
}

func TestRepairLoopRetriesUntilValidOrExhausted(t *testing.T) {
	calls := 0
	result := RepairLoop(
		func() Row { calls++; return Row{"v": Int(int64(calls))} },
		func(r Row) bool { v, _ := r["v"].AsFloat(); return v >= 3 },
		5,
	)
	if !result.Success || result.Attempts != 3 {
		t.Fatalf("expected success on third attempt, got %+v", result)
	}
}

func TestRepairLoopReportsFailureAfterMaxAttempts(t *testing.T) {
	calls := 0
	result := RepairLoop(
		func() Row { calls++; return Row{"v": Int(int64(calls))} },
		func(r Row) bool { return false },
		4,
	)
	if result.Success {
		t.Fatalf("expected exhaustion to report failure")
	}
	if result.Attempts != 4 {
		t.Fatalf("expected exactly maxAttempts attempts, got %d", result.Attempts)
	}
	if calls != 4 {
		t.Fatalf("expected generateRow to be called exactly maxAttempts times, got %d", calls)
	}
}
