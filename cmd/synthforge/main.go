// Package main contains the cli implementation of the tool. It uses cobra
// package for cli tool implementation.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guimmamanna/synthforge/internal/config"
	"github.com/guimmamanna/synthforge/internal/export"
	"github.com/guimmamanna/synthforge/internal/pipeline"
	"github.com/guimmamanna/synthforge/internal/validate"
)

type generateFlags struct {
	outDir       string
	outputFormat string
	configFormat string
}

type validateFlags struct {
	dataDir      string
	outputFormat string
	configFormat string
	reportFile   string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "synthforge",
		Short: "Synthetic tabular dataset generator",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <schema-file>",
		Short: "Generate a synthetic dataset from a schema definition",
		Long: `Generate reads a declarative schema (YAML, JSON, or TOML), derives a
deterministic seeded stream from its configured seed, and writes one file
per table under --output in the requested format.

Examples:
  synthforge generate schema.yaml
  synthforge generate schema.json --output ./out --output-format sql`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outDir, "output", "o", "./output", "Output directory for generated tables")
	cmd.Flags().StringVarP(&flags.outputFormat, "output-format", "f", "csv", "Output format: csv, json, or sql")
	cmd.Flags().StringVar(&flags.configFormat, "config-format", "", "Schema source format (yaml, json, toml); inferred from extension if omitted")

	return cmd
}

func runGenerate(schemaPath string, flags *generateFlags) error {
	loaded, err := loadSchema(schemaPath, flags.configFormat)
	if err != nil {
		return err
	}

	outputFormat, err := export.ParseFormat(flags.outputFormat)
	if err != nil {
		return err
	}

	fmt.Printf("generating dataset %q (seed %d, mode %s, %d tables)\n",
		loaded.Schema.Dataset.Name, loaded.Schema.Dataset.Seed, loaded.Schema.Dataset.Mode, len(loaded.Schema.Tables))

	result, err := pipeline.Run(loaded.Schema, loaded.ConfigHash, flags.outDir, outputFormat)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	fmt.Printf("wrote dataset %s to %s\n", result.Metadata.DatasetID, flags.outDir)
	fmt.Println(result.Report.Summary())
	return nil
}

func validateCmd() *cobra.Command {
	flags := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate <schema-file>",
		Short: "Independently validate a previously generated dataset",
		Long: `Validate re-reads a dataset's persisted output files and checks them
against the schema, without consulting any bookkeeping from the run that
produced them.

Examples:
  synthforge validate schema.yaml --data ./output
  synthforge validate schema.yaml --data ./output --output-format sql --report report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.dataDir, "data", "./output", "Directory containing the generated tables")
	cmd.Flags().StringVarP(&flags.outputFormat, "output-format", "f", "csv", "Data format to read: csv, json, or sql")
	cmd.Flags().StringVar(&flags.configFormat, "config-format", "", "Schema source format (yaml, json, toml); inferred from extension if omitted")
	cmd.Flags().StringVar(&flags.reportFile, "report", "", "Write the full JSON report to this file in addition to the summary")

	return cmd
}

func runValidate(schemaPath string, flags *validateFlags) error {
	loaded, err := loadSchema(schemaPath, flags.configFormat)
	if err != nil {
		return err
	}

	dataFormat, err := export.ParseFormat(flags.outputFormat)
	if err != nil {
		return err
	}

	report, err := validate.Validate(loaded.Schema, flags.dataDir, dataFormat)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	fmt.Println(report.Summary())

	if flags.reportFile != "" {
		if err := writeReport(report, flags.reportFile); err != nil {
			return err
		}
		fmt.Printf("report saved to %s\n", flags.reportFile)
	}

	if report.TotalViolations > 0 {
		return fmt.Errorf("validate: %d violation(s) found", report.TotalViolations)
	}
	return nil
}

func loadSchema(path, configFormat string) (*config.Loaded, error) {
	format := config.Format(configFormat)
	loaded, err := config.LoadFile(path, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return loaded, nil
}

func writeReport(report *validate.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
