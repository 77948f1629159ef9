// Package csv reads project records from comma-separated files.
package csv

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"travel-reimbursement/core/scanner"
	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/errors"
)

// Scanner implements the scanner.Scanner interface for CSV files with a
// header row naming start_date, end_date and cost_zone.
type Scanner struct{}

// NewScanner creates a new CSV scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Name returns the scanner name
func (s *Scanner) Name() string {
	return "csv"
}

// CanScan accepts files with a .csv extension
func (s *Scanner) CanScan(ctx context.Context, input *types.ProjectInput) (bool, error) {
	return strings.EqualFold(filepath.Ext(input.Path), ".csv"), nil
}

// Scan reads every data row of the file into a record
func (s *Scanner) Scan(ctx context.Context, input *types.ProjectInput) (*scanner.ScanResult, error) {
	f, err := os.Open(input.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("file", input.Path)
		}
		return nil, errors.Parsing("failed to open file", err).WithContext("file", input.Path)
	}
	defer f.Close()

	return s.Read(ctx, input.Path, f)
}

// Read parses CSV content from r. name is used only in diagnostics.
func (s *Scanner) Read(ctx context.Context, name string, r io.Reader) (*scanner.ScanResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	result := &scanner.ScanResult{Records: make([]types.Record, 0)}

	header, err := reader.Read()
	if err == io.EOF {
		return result, nil
	}
	if err != nil {
		return nil, parseError(name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	result.Warnings = append(result.Warnings, missingColumns(name, header)...)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(name, err)
		}

		record := make(types.Record, len(header))
		for i, column := range header {
			record[column] = row[i]
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

func missingColumns(name string, header []string) []scanner.ScanWarning {
	present := make(map[string]bool, len(header))
	for _, column := range header {
		present[column] = true
	}

	var warnings []scanner.ScanWarning
	for _, column := range []string{types.KeyStartDate, types.KeyEndDate, types.KeyCostZone} {
		if !present[column] {
			warnings = append(warnings, scanner.ScanWarning{
				File:    name,
				Line:    1,
				Message: "header is missing column " + column,
			})
		}
	}
	return warnings
}

func parseError(name string, err error) error {
	e := errors.Parsing("failed to read CSV", err).WithContext("file", name)
	var perr *csv.ParseError
	if stderrors.As(err, &perr) {
		e.WithContext("line", perr.Line)
	}
	return e
}

func init() {
	// Register this scanner; files with no recognised extension are read as CSV
	s := NewScanner()
	if err := scanner.Register(s); err == nil {
		_ = scanner.GetDefault().SetFallback(s.Name())
	}
}
