// Package logging configures the process-wide structured logger used by the
// generation and validation pipelines. It wraps zerolog the way the rest of
// the toolchain wraps its other third-party dependencies: a small idiomatic
// surface, configured once, passed around by value.
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Logger returns the process-wide structured logger, configuring it on
// first use. Output goes to stderr so stdout stays free for CLI results.
func Logger() zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
	return logger
}

// RowGenerationFailed logs the structured event spec.md §4.7/§7 require when
// the repair loop exhausts max_attempts for a row: the last candidate is
// still emitted, but the failure must remain observable.
func RowGenerationFailed(table string, rowIndex, attempts int) {
	Logger().Info().
		Str("message", "row_generation_failed").
		Str("table", table).
		Int("row_index", rowIndex).
		Int("attempts", attempts).
		Msg("row_generation_failed")
}

// TableStarted logs the start of generation for a single table.
func TableStarted(table string, rowCount int) {
	Logger().Info().
		Str("message", "table_generation_started").
		Str("table", table).
		Int("row_count", rowCount).
		Msg("table_generation_started")
}

// DatasetCompleted logs the end of a full generation run.
func DatasetCompleted(datasetID, name string, tables int) {
	Logger().Info().
		Str("message", "dataset_generation_completed").
		Str("dataset_id", datasetID).
		Str("dataset_name", name).
		Int("tables", tables).
		Msg("dataset_generation_completed")
}
