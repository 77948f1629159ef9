package reimbursement

import (
	"cloud.google.com/go/civil"

	"travel-reimbursement/core/types"
)

// IsTravelDay reports whether day is a travel day for merged[index]: the
// project's first day with no contiguous predecessor, or its last day with no
// contiguous successor. Neighbours count as contiguous when the gap between
// them is at most one day.
func IsTravelDay(merged []types.Project, index int, day civil.Date) bool {
	p := merged[index]

	if day == p.Start {
		if index == 0 || merged[index-1].End.Before(p.Start.AddDays(-1)) {
			return true
		}
	}
	if day == p.End {
		if index == len(merged)-1 || merged[index+1].Start.After(p.End.AddDays(1)) {
			return true
		}
	}
	return false
}
