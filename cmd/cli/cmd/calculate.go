// Package cmd - calculate command
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "travel-reimbursement/adapters/csv"
	_ "travel-reimbursement/adapters/hcl"
	"travel-reimbursement/core/output"
	"travel-reimbursement/core/reimbursement"
	"travel-reimbursement/core/scanner"
	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/config"
	"travel-reimbursement/internal/logging"
)

type calculateOptions struct {
	format  string
	details bool
	reader  string
}

// calculateCmd represents the calculate command
func calculateCmd() *cobra.Command {
	opts := &calculateOptions{}

	cmd := &cobra.Command{
		Use:   "calculate <file>",
		Short: "Calculate the reimbursement for a project file",
		Long: `Read projects from a file and print the reimbursement summary.

CSV files need a header row with start_date, end_date and cost_zone columns.
HCL files hold one project block per project with the same three attributes.
The reader is picked by extension; files with any other extension are read as
CSV unless --reader says otherwise.
Dates are YYYY-MM-DD and cost_zone is high or low.

Examples:
  travel-reimbursement calculate projects.csv
  travel-reimbursement calculate --format markdown projects.hcl
  travel-reimbursement calculate --reader hcl projects.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format ("+strings.Join(output.Available(), ", ")+"); defaults to the configured format")
	cmd.Flags().BoolVarP(&opts.details, "details", "d", false, "print the per-day schedule")
	cmd.Flags().StringVarP(&opts.reader, "reader", "r", "", "record reader ("+strings.Join(scanner.GetDefault().Names(), ", ")+"); detected from the extension when empty")

	return cmd
}

func runCalculate(cmd *cobra.Command, path string, opts *calculateOptions) error {
	ctx := cmd.Context()
	cfg := config.Get()

	// Past argument validation, errors are about the data, not the invocation
	cmd.SilenceUsage = true

	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("File '%s' does not exist or else is not a file.", path)
	}

	format := opts.format
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.ForFormat(format)
	if err != nil {
		return err
	}

	showDetails := cfg.Output.ShowDetails
	if cmd.Flags().Changed("details") {
		showDetails = opts.details
	}

	schedule, err := cfg.RateSchedule()
	if err != nil {
		return err
	}

	runID := logging.NewRunID()
	logger := logging.WithRun(runID)
	logger.Info("starting reimbursement calculation", zap.String("file", path))

	// Create project input
	input := &types.ProjectInput{
		ID:     runID,
		Path:   path,
		Source: types.SourceCLI,
		Metadata: types.InputMetadata{
			Timestamp: time.Now(),
		},
	}

	scanResult, err := scan(cmd, opts.reader, input)
	if err != nil {
		return err
	}
	for _, w := range scanResult.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s:%d: %s\n", w.File, w.Line, w.Message)
	}

	processor, err := reimbursement.NewProcessor(schedule, reimbursement.WithLogger(logger))
	if err != nil {
		return err
	}

	breakdown, err := processor.Breakdown(ctx, scanResult.Records)
	if err != nil {
		return err
	}

	report := &output.Report{
		Result:      breakdown.Result,
		Days:        breakdown.Days,
		ShowDetails: showDetails,
		Metadata: output.Metadata{
			RunID:     runID,
			Source:    path,
			Timestamp: input.Metadata.Timestamp.Format(time.RFC3339),
			Version:   Version,
		},
	}

	logger.Info("calculation finished",
		zap.Int("records", len(scanResult.Records)),
		zap.String("total", breakdown.Result.Total.StringFixed(2)))

	return formatter.Render(cmd.OutOrStdout(), report)
}

func scan(cmd *cobra.Command, reader string, input *types.ProjectInput) (*scanner.ScanResult, error) {
	registry := scanner.GetDefault()
	if reader != "" {
		return registry.Scan(cmd.Context(), reader, input)
	}
	return registry.DetectAndScan(cmd.Context(), input)
}
