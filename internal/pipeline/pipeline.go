// Package pipeline wires the schema, generate, export, and validate
// packages into the single end-to-end run spec.md §4.8 describes. It sits
// above all four so that none of them needs to know about the others'
// callers, the same layering the teacher's internal/apply package uses to
// sit above internal/core, internal/diff, and internal/output.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/guimmamanna/synthforge/internal/export"
	"github.com/guimmamanna/synthforge/internal/generate"
	"github.com/guimmamanna/synthforge/internal/logging"
	"github.com/guimmamanna/synthforge/internal/plan"
	"github.com/guimmamanna/synthforge/internal/rng"
	"github.com/guimmamanna/synthforge/internal/schema"
	"github.com/guimmamanna/synthforge/internal/validate"
)

// RunMetadata is the record written alongside a generated dataset
// describing the run that produced it, modeled on the original
// implementation's config/models.py RunMetadata.
type RunMetadata struct {
	DatasetID   string         `json:"dataset_id"`
	DatasetName string         `json:"dataset_name"`
	Seed        int64          `json:"seed"`
	Mode        string         `json:"mode"`
	Timestamp   string         `json:"timestamp"`
	ConfigHash  string         `json:"config_hash"`
	Format      string         `json:"format"`
	RowCounts   map[string]int `json:"row_counts"`
	Tables      []string       `json:"tables"`
	MaxAttempts int            `json:"max_attempts"`
}

// Result bundles everything a generation run produces, for a caller (the
// CLI) that wants to report on it without re-reading the files it just
// wrote.
type Result struct {
	Metadata RunMetadata
	Report   *validate.Report
}

// Run executes the full pipeline: create the output directory, plan table
// order, drive the row builder and repair loop per table, export, write run
// metadata, then hand off to the Validator for an independent pass,
// splicing repair-attempt totals into its report before persisting it.
// Grounded on original_source/synthtest-ai/synthtest/gen/core.py's
// generate_dataset.
func Run(s *schema.Schema, configHash, outDir string, format export.Format) (*Result, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("pipeline: create output directory: %w", err)
	}

	datasetID := uuid.New().String()
	root := rng.WithSeed(s.Dataset.Seed)

	order, err := plan.Order(s)
	if err != nil {
		return nil, err
	}

	rowCounts := make(map[string]int, len(order))
	pkPools := make(map[string][]generate.Value, len(order))
	repairAttempts := make(map[string]int, len(order))

	for _, tableName := range order {
		table := s.Tables[tableName]
		tableRNG := root.Derive(tableName)
		rowCount := s.RowCount(tableName)
		rowCounts[tableName] = rowCount
		repairAttempts[tableName] = 0

		exporter, err := export.New(format, outDir, tableName, tableColumnOrder(table))
		if err != nil {
			return nil, err
		}

		unique := generate.NewUniqueSets(table)
		pkSet := make(map[string]bool)

		logging.TableStarted(tableName, rowCount)

		for idx := 0; idx < rowCount; idx++ {
			var row generate.Row
			if s.Dataset.Mode == schema.ModeValid {
				result := generate.RepairLoop(
					func() generate.Row { return generate.GenerateRow(table, tableRNG, pkPools, s.Dataset.Mode) },
					func(r generate.Row) bool {
						return generate.RowValid(r, table, unique, pkSet, pkPools, s.Rules)
					},
					s.Dataset.MaxAttempts,
				)
				row = result.Row
				repairAttempts[tableName] += result.Attempts
				if !result.Success {
					logging.RowGenerationFailed(tableName, idx, result.Attempts)
				}
			} else {
				row = generate.GenerateRow(table, tableRNG, pkPools, s.Dataset.Mode)
			}

			generate.RegisterUniques(row, table, unique, pkSet, pkPools)
			if err := exporter.WriteRow(row); err != nil {
				exporter.Close()
				return nil, fmt.Errorf("pipeline: write row for table %q: %w", tableName, err)
			}
		}

		if err := exporter.Close(); err != nil {
			return nil, fmt.Errorf("pipeline: close exporter for table %q: %w", tableName, err)
		}
	}

	metadata := RunMetadata{
		DatasetID:   datasetID,
		DatasetName: s.Dataset.Name,
		Seed:        s.Dataset.Seed,
		Mode:        string(s.Dataset.Mode),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		ConfigHash:  configHash,
		Format:      string(format),
		RowCounts:   rowCounts,
		Tables:      order,
		MaxAttempts: s.Dataset.MaxAttempts,
	}
	if err := writeJSON(filepath.Join(outDir, "run_metadata.json"), metadata); err != nil {
		return nil, err
	}

	report, err := validate.Validate(s, outDir, format)
	if err != nil {
		return nil, err
	}
	for tableName, attempts := range repairAttempts {
		if tr, ok := report.Tables[tableName]; ok {
			n := attempts
			tr.RepairAttempts = &n
		}
	}
	if err := writeJSON(filepath.Join(outDir, "validation_report.json"), report); err != nil {
		return nil, err
	}

	logging.DatasetCompleted(datasetID, s.Dataset.Name, len(order))

	return &Result{Metadata: metadata, Report: report}, nil
}

func tableColumnOrder(table *schema.Table) []string {
	if len(table.ColumnOrder) > 0 {
		return table.ColumnOrder
	}
	names := make([]string, 0, len(table.Columns))
	for name := range table.Columns {
		names = append(names, name)
	}
	return names
}

func writeJSON(path string, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("pipeline: marshal %q: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, encoded, 0o644)
}
