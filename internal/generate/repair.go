package generate

// RepairResult is the outcome of a bounded repair loop: the last row
// produced, how many attempts it took, and whether that row passed the
// local validator.
type RepairResult struct {
	Row      Row
	Attempts int
	Success  bool
}

// RepairLoop calls generateRow until validateRow accepts it or maxAttempts
// is exhausted. This is the only place the retry policy lives (spec.md
// §4.7): attempts are counted whether they succeed or fail, and on
// exhaustion the last candidate is returned unchanged for the caller to
// log and emit as-is.
func RepairLoop(generateRow func() Row, validateRow func(Row) bool, maxAttempts int) RepairResult {
	var last Row
	attempts := 0
	for attempts < maxAttempts {
		attempts++
		row := generateRow()
		last = row
		if validateRow(row) {
			return RepairResult{Row: row, Attempts: attempts, Success: true}
		}
	}
	return RepairResult{Row: last, Attempts: attempts, Success: false}
}
