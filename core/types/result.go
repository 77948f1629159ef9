// Package types defines the domain types shared by readers, the engine and output.
// Types here carry no pipeline logic.
package types

import "github.com/shopspring/decimal"

// ReimbursementResult is the aggregate over a daily rate table
type ReimbursementResult struct {
	// Total is the sum of every daily rate
	Total decimal.Decimal `json:"total"`

	HighCostFullDays   int `json:"high_cost_full_days"`
	HighCostTravelDays int `json:"high_cost_travel_days"`
	LowCostFullDays    int `json:"low_cost_full_days"`
	LowCostTravelDays  int `json:"low_cost_travel_days"`
}

// TotalDays returns the number of distinct days counted
func (r *ReimbursementResult) TotalDays() int {
	return r.HighCostFullDays + r.HighCostTravelDays + r.LowCostFullDays + r.LowCostTravelDays
}
