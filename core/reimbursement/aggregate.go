package reimbursement

import (
	"github.com/shopspring/decimal"

	"travel-reimbursement/core/types"
)

// CalculateResult sums a daily rate table into a total and per-type day
// counts. Zones other than high are counted as low.
func CalculateResult(rates types.DailyRates) *types.ReimbursementResult {
	result := &types.ReimbursementResult{Total: decimal.Zero}

	for _, day := range rates {
		result.Total = result.Total.Add(day.Rate)

		switch {
		case day.Zone == types.CostZoneHigh && day.IsTravelDay:
			result.HighCostTravelDays++
		case day.Zone == types.CostZoneHigh:
			result.HighCostFullDays++
		case day.IsTravelDay:
			result.LowCostTravelDays++
		default:
			result.LowCostFullDays++
		}
	}

	return result
}
