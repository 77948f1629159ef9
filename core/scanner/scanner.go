// Package scanner defines the interface for project record readers.
// Scanners turn a source file into raw records.
// NO date parsing or rate logic belongs here.
package scanner

import (
	"context"

	"travel-reimbursement/core/types"
)

// Scanner reads project records from a source
type Scanner interface {
	// Name returns the scanner identifier
	Name() string

	// CanScan determines if this scanner can handle the input
	CanScan(ctx context.Context, input *types.ProjectInput) (bool, error)

	// Scan reads the input and returns raw records
	Scan(ctx context.Context, input *types.ProjectInput) (*ScanResult, error)
}

// ScanResult contains the output of a scan operation
type ScanResult struct {
	// Records are the raw project rows, in file order
	Records []types.Record `json:"records"`

	// Warnings are non-fatal issues encountered
	Warnings []ScanWarning `json:"warnings,omitempty"`
}

// ScanWarning represents a non-fatal scanning issue
type ScanWarning struct {
	// File is the file where the warning occurred
	File string `json:"file"`

	// Line is the line number
	Line int `json:"line,omitempty"`

	// Message describes the warning
	Message string `json:"message"`
}

// HasWarnings returns true if there are any warnings
func (r *ScanResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}
