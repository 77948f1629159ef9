// Package types - Project input types
package types

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// CostZone classifies a project location by which rate pair applies
type CostZone string

const (
	CostZoneHigh CostZone = "high"
	CostZoneLow  CostZone = "low"
)

// String returns the string representation
func (z CostZone) String() string {
	return string(z)
}

// ParseCostZone lower-cases s and checks it names a known zone. Surrounding
// whitespace is not trimmed.
func ParseCostZone(s string) (CostZone, error) {
	zone := CostZone(strings.ToLower(s))
	switch zone {
	case CostZoneHigh, CostZoneLow:
		return zone, nil
	}
	return "", fmt.Errorf("unknown cost zone %q (want %q or %q)", s, CostZoneHigh, CostZoneLow)
}

// Record keys every record source must provide.
const (
	KeyStartDate = "start_date"
	KeyEndDate   = "end_date"
	KeyCostZone  = "cost_zone"
)

// Record is one raw project row as read from a source file.
// Values are normally strings; sources with typed values (HCL) may hold others.
type Record map[string]any

// Project is a closed date range worked in a single cost zone.
type Project struct {
	Start civil.Date `json:"start_date"`
	End   civil.Date `json:"end_date"`
	Zone  CostZone   `json:"cost_zone"`
}

// String returns the string representation
func (p Project) String() string {
	return fmt.Sprintf("%s..%s (%s)", p.Start, p.End, p.Zone)
}

// Days returns the number of calendar days the project covers, inclusive.
func (p Project) Days() int {
	return p.End.DaysSince(p.Start) + 1
}

// Contains reports whether other lies entirely within p.
func (p Project) Contains(other Project) bool {
	return !other.Start.Before(p.Start) && !other.End.After(p.End)
}

// ProjectInput represents a record source to be read
type ProjectInput struct {
	// ID uniquely identifies this input
	ID string `json:"id"`

	// Path is the filesystem path to the record file
	Path string `json:"path"`

	// Source indicates where the input came from
	Source InputSource `json:"source"`

	// Metadata contains additional context
	Metadata InputMetadata `json:"metadata"`
}

// InputSource indicates the origin of the input
type InputSource string

const (
	SourceCLI InputSource = "cli"
)

// String returns the string representation
func (s InputSource) String() string {
	return string(s)
}

// InputMetadata contains metadata about the input
type InputMetadata struct {
	// Timestamp is when the input was received
	Timestamp time.Time `json:"timestamp"`
}
