// Package hcl reads project records from HCL files.
//
// A file holds any number of project blocks:
//
//	project {
//	  start_date = "2024-10-01"
//	  end_date   = "2024-10-04"
//	  cost_zone  = "low"
//	}
//
// Attribute values must be literals; there are no variables or functions.
package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"travel-reimbursement/core/scanner"
	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "project"},
	},
}

var knownAttributes = map[string]bool{
	types.KeyStartDate: true,
	types.KeyEndDate:   true,
	types.KeyCostZone:  true,
}

// Scanner implements the scanner.Scanner interface for HCL project files
type Scanner struct{}

// NewScanner creates a new HCL scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Name returns the scanner name
func (s *Scanner) Name() string {
	return "hcl"
}

// CanScan accepts files with a .hcl extension
func (s *Scanner) CanScan(ctx context.Context, input *types.ProjectInput) (bool, error) {
	return strings.EqualFold(filepath.Ext(input.Path), ".hcl"), nil
}

// Scan parses project blocks into records
func (s *Scanner) Scan(ctx context.Context, input *types.ProjectInput) (*scanner.ScanResult, error) {
	src, err := os.ReadFile(input.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("file", input.Path)
		}
		return nil, errors.Parsing("failed to read file", err).WithContext("file", input.Path)
	}
	return s.Parse(ctx, input.Path, src)
}

// Parse reads project blocks from src. filename is used only in diagnostics.
func (s *Scanner) Parse(ctx context.Context, filename string, src []byte) (*scanner.ScanResult, error) {
	// A fresh parser per call; hclparse.Parser caches files and is not safe for concurrent use.
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagError(filename, diags)
	}

	result := &scanner.ScanResult{Records: make([]types.Record, 0, len(content.Blocks))}

	for _, block := range content.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diagError(filename, diags)
		}

		record := make(types.Record, len(attrs))
		for _, name := range sortedNames(attrs) {
			attr := attrs[name]
			if !knownAttributes[name] {
				result.Warnings = append(result.Warnings, scanner.ScanWarning{
					File:    filename,
					Line:    attr.Range.Start.Line,
					Message: fmt.Sprintf("ignoring unknown attribute %q", name),
				})
				continue
			}

			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, diagError(filename, diags)
			}
			record[name] = ctyToGo(val)
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

// ctyToGo converts literal values to plain Go values so the normalizer can
// report type mismatches. Collections and unknowns are returned as cty.Value.
func ctyToGo(val cty.Value) any {
	if !val.IsKnown() {
		return val
	}
	if val.IsNull() {
		return nil
	}

	switch val.Type() {
	case cty.String:
		return val.AsString()
	case cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return i
			}
		}
		f, _ := bf.Float64()
		return f
	case cty.Bool:
		return val.True()
	default:
		return val
	}
}

func sortedNames(attrs hcl.Attributes) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func diagError(filename string, diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		e := errors.Parsing(diag.Summary, diags).WithContext("file", filename)
		if diag.Subject != nil {
			e.WithContext("line", diag.Subject.Start.Line)
		}
		return e
	}
	return errors.Parsing("invalid HCL", diags).WithContext("file", filename)
}

func init() {
	// Register this scanner
	_ = scanner.Register(NewScanner())
}
