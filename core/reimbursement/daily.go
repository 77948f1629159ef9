package reimbursement

import "travel-reimbursement/core/types"

// CalculateDailyRates expands merged projects into one priced entry per date.
//
// A date produced by more than one project keeps a single entry, chosen by:
//  1. a high-zone entry replaces a low-zone one, whatever the rates;
//  2. otherwise the strictly higher rate wins;
//  3. at equal rates a full day replaces a travel day;
//  4. otherwise the entry seen first stays.
func CalculateDailyRates(merged []types.Project, schedule types.RateSchedule) types.DailyRates {
	rates := make(types.DailyRates)

	for index, p := range merged {
		for day := p.Start; !day.After(p.End); day = day.AddDays(1) {
			travel := IsTravelDay(merged, index, day)
			incoming := types.DailyRate{
				Rate:        schedule.Rate(p.Zone, travel),
				Zone:        p.Zone,
				IsTravelDay: travel,
			}

			existing, ok := rates[day]
			if !ok || supersedes(incoming, existing) {
				rates[day] = incoming
			}
		}
	}

	return rates
}

func supersedes(incoming, existing types.DailyRate) bool {
	if incoming.Zone == types.CostZoneHigh && existing.Zone == types.CostZoneLow {
		return true
	}
	switch incoming.Rate.Cmp(existing.Rate) {
	case 1:
		return true
	case 0:
		return !incoming.IsTravelDay
	default:
		return false
	}
}
