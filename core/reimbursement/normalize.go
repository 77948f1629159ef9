// Package reimbursement turns project date ranges into a priced daily schedule.
//
// The pipeline has four stages, each a pure function of the previous stage's
// output:
//
//	NormalizeRecords -> MergeProjects -> CalculateDailyRates -> CalculateResult
//
// Processor chains them and is the entry point used by the CLI.
package reimbursement

import (
	"regexp"
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/errors"
)

// DateLayout is the only accepted date layout.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate converts a YYYY-MM-DD string to a calendar date. Values that are
// not strings fail with TypeType; strings in any other layout, or naming a day
// that does not exist, fail with TypeFormat.
func ParseDate(value any) (civil.Date, error) {
	s, ok := value.(string)
	if !ok {
		return civil.Date{}, errors.Newf(errors.TypeType, "date must be a string, got %T", value)
	}
	if !datePattern.MatchString(s) {
		return civil.Date{}, errors.Format("date must match YYYY-MM-DD", nil).WithContext("value", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return civil.Date{}, errors.Format("invalid calendar date", err).WithContext("value", s)
	}
	return civil.DateOf(t), nil
}

// NormalizeRecords parses raw records into projects sorted by end date, then
// start date, then zone. The first bad record aborts with an error carrying
// its row index.
func NormalizeRecords(records []types.Record) ([]types.Project, error) {
	projects := make([]types.Project, 0, len(records))

	for i, record := range records {
		project, err := normalizeRecord(record)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.WithContext("row", i)
			}
			return nil, err
		}
		projects = append(projects, project)
	}

	SortProjects(projects)
	return projects, nil
}

func normalizeRecord(record types.Record) (types.Project, error) {
	var project types.Project

	for _, key := range []string{types.KeyStartDate, types.KeyEndDate, types.KeyCostZone} {
		if _, ok := record[key]; !ok {
			return project, errors.Newf(errors.TypeInput, "record is missing %q", key).WithContext("key", key)
		}
	}

	start, err := ParseDate(record[types.KeyStartDate])
	if err != nil {
		return project, withKey(err, types.KeyStartDate)
	}
	end, err := ParseDate(record[types.KeyEndDate])
	if err != nil {
		return project, withKey(err, types.KeyEndDate)
	}
	if end.Before(start) {
		return project, errors.Newf(errors.TypeValidation, "start_date %s is after end_date %s", start, end)
	}

	rawZone, ok := record[types.KeyCostZone].(string)
	if !ok {
		return project, errors.Newf(errors.TypeType, "cost_zone must be a string, got %T", record[types.KeyCostZone]).
			WithContext("key", types.KeyCostZone)
	}
	zone, err := types.ParseCostZone(rawZone)
	if err != nil {
		return project, errors.Wrap(errors.TypeValidation, "invalid cost_zone", err).WithContext("key", types.KeyCostZone)
	}

	return types.Project{Start: start, End: end, Zone: zone}, nil
}

func withKey(err error, key string) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithContext("key", key)
	}
	return err
}

// SortProjects orders projects by (End, Start, Zone) ascending. The sort is
// stable, so identical projects keep their input order.
func SortProjects(projects []types.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.End != b.End {
			return a.End.Before(b.End)
		}
		if a.Start != b.Start {
			return a.Start.Before(b.Start)
		}
		return a.Zone < b.Zone
	})
}
