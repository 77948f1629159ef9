// Package output provides output formatting interfaces.
// This package produces human and machine-readable reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is the plain five-line summary
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown table
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report contains everything a formatter may render
type Report struct {
	// Result is the aggregate reimbursement
	Result *types.ReimbursementResult `json:"result"`

	// Days is the per-day schedule, sorted by date. Rendered only when
	// ShowDetails is set.
	Days []types.Day `json:"days,omitempty"`

	// ShowDetails includes the per-day schedule
	ShowDetails bool `json:"-"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata"`
}

// Metadata contains execution context
type Metadata struct {
	// RunID identifies the calculation run
	RunID string `json:"run_id,omitempty"`

	// Source is the file the records came from
	Source string `json:"source,omitempty"`

	// Timestamp is when the calculation was performed
	Timestamp string `json:"timestamp,omitempty"`

	// Version is the tool version
	Version string `json:"version,omitempty"`
}

var formatters = map[Format]Formatter{
	FormatCLI:      cliFormatter{},
	FormatJSON:     jsonFormatter{},
	FormatMarkdown: markdownFormatter{},
}

// ForFormat returns the formatter registered for name
func ForFormat(name string) (Formatter, error) {
	f, ok := formatters[Format(name)]
	if !ok {
		return nil, errors.NotSupported("output format " + name).WithContext("available", Available())
	}
	return f, nil
}

// Available lists the known format names
func Available() []string {
	names := make([]string, 0, len(formatters))
	for f := range formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

type cliFormatter struct{}

func (cliFormatter) Format() Format { return FormatCLI }

func (cliFormatter) Render(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	if report.ShowDetails {
		for _, d := range report.Days {
			kind := "full"
			if d.IsTravelDay {
				kind = "travel"
			}
			ew.printf("%s  %-4s  %-6s  $%s\n", d.Date, d.Zone, kind, d.Rate.StringFixed(2))
		}
		if len(report.Days) > 0 {
			ew.printf("\n")
		}
	}

	r := report.Result
	ew.printf("Total: $%s\n", r.Total.StringFixed(2))
	ew.printf("High Cost Full Days: %d\n", r.HighCostFullDays)
	ew.printf("High Cost Travel Days: %d\n", r.HighCostTravelDays)
	ew.printf("Low Cost Full Days: %d\n", r.LowCostFullDays)
	ew.printf("Low Cost Travel Days: %d\n", r.LowCostTravelDays)
	return ew.err
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

type jsonResult struct {
	Total              string `json:"total"`
	HighCostFullDays   int    `json:"high_cost_full_days"`
	HighCostTravelDays int    `json:"high_cost_travel_days"`
	LowCostFullDays    int    `json:"low_cost_full_days"`
	LowCostTravelDays  int    `json:"low_cost_travel_days"`
}

type jsonReport struct {
	Result   jsonResult  `json:"result"`
	Days     []types.Day `json:"days,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

func (jsonFormatter) Render(w io.Writer, report *Report) error {
	r := report.Result
	out := jsonReport{
		Result: jsonResult{
			Total:              r.Total.StringFixed(2),
			HighCostFullDays:   r.HighCostFullDays,
			HighCostTravelDays: r.HighCostTravelDays,
			LowCostFullDays:    r.LowCostFullDays,
			LowCostTravelDays:  r.LowCostTravelDays,
		},
		Metadata: report.Metadata,
	}
	if report.ShowDetails {
		out.Days = report.Days
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type markdownFormatter struct{}

func (markdownFormatter) Format() Format { return FormatMarkdown }

func (markdownFormatter) Render(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	r := report.Result

	ew.printf("| Item | Value |\n")
	ew.printf("|---|---:|\n")
	ew.printf("| Total | $%s |\n", r.Total.StringFixed(2))
	ew.printf("| High Cost Full Days | %d |\n", r.HighCostFullDays)
	ew.printf("| High Cost Travel Days | %d |\n", r.HighCostTravelDays)
	ew.printf("| Low Cost Full Days | %d |\n", r.LowCostFullDays)
	ew.printf("| Low Cost Travel Days | %d |\n", r.LowCostTravelDays)

	if report.ShowDetails && len(report.Days) > 0 {
		ew.printf("\n| Date | Zone | Day | Rate |\n")
		ew.printf("|---|---|---|---:|\n")
		for _, d := range report.Days {
			kind := "full"
			if d.IsTravelDay {
				kind = "travel"
			}
			ew.printf("| %s | %s | %s | $%s |\n", d.Date, d.Zone, kind, d.Rate.StringFixed(2))
		}
	}
	return ew.err
}

// errWriter remembers the first write error so renderers can print freely.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
