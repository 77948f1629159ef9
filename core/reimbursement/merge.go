package reimbursement

import "travel-reimbursement/core/types"

// MergeProjects collapses a sorted project list in a single pass.
//
// When an incoming project overlaps or touches the last merged one:
//   - same zone: the last project's end is extended to cover it. A project
//     already inside the last one extends to the same end, a no-op;
//   - different zone: it is dropped if fully contained in the last project,
//     otherwise kept as a separate (overlapping) entry for the daily resolver
//     to reconcile.
//
// Otherwise it starts a new entry. The input must be ordered by SortProjects
// and is not modified.
func MergeProjects(projects []types.Project) []types.Project {
	merged := make([]types.Project, 0, len(projects))

	for _, p := range projects {
		if len(merged) == 0 {
			merged = append(merged, p)
			continue
		}

		last := &merged[len(merged)-1]
		if last.End.Before(p.Start.AddDays(-1)) {
			merged = append(merged, p)
			continue
		}

		if last.Zone == p.Zone {
			if p.End.After(last.End) {
				last.End = p.End
			}
			continue
		}

		if last.Contains(p) {
			continue
		}
		merged = append(merged, p)
	}

	return merged
}
