// Package types - Daily rate types
package types

import (
	"fmt"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// RateSchedule holds the four daily reimbursement rates.
type RateSchedule struct {
	HighTravel decimal.Decimal `json:"high_travel"`
	HighFull   decimal.Decimal `json:"high_full"`
	LowTravel  decimal.Decimal `json:"low_travel"`
	LowFull    decimal.Decimal `json:"low_full"`
}

// DefaultRateSchedule returns the stock schedule.
func DefaultRateSchedule() RateSchedule {
	return RateSchedule{
		HighTravel: decimal.NewFromInt(85),
		HighFull:   decimal.NewFromInt(75),
		LowTravel:  decimal.NewFromInt(55),
		LowFull:    decimal.NewFromInt(45),
	}
}

// Rate returns the daily rate for a zone and day type. Any zone other than
// high is paid at the low rates.
func (s RateSchedule) Rate(zone CostZone, isTravelDay bool) decimal.Decimal {
	switch {
	case zone == CostZoneHigh && isTravelDay:
		return s.HighTravel
	case zone == CostZoneHigh:
		return s.HighFull
	case isTravelDay:
		return s.LowTravel
	default:
		return s.LowFull
	}
}

// Validate checks every rate is positive. The relative ordering of rates is
// not enforced.
func (s RateSchedule) Validate() error {
	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"high_travel", s.HighTravel},
		{"high_full", s.HighFull},
		{"low_travel", s.LowTravel},
		{"low_full", s.LowFull},
	}
	for _, r := range rates {
		if !r.rate.IsPositive() {
			return fmt.Errorf("rate %s must be positive, got %s", r.name, r.rate)
		}
	}
	return nil
}

// DailyRate is the resolved payment for one calendar day.
type DailyRate struct {
	Rate        decimal.Decimal `json:"rate"`
	Zone        CostZone        `json:"cost_zone"`
	IsTravelDay bool            `json:"is_travel_day"`
}

// DailyRates maps each covered date to its resolved rate.
type DailyRates map[civil.Date]DailyRate

// Day pairs a date with its resolved rate.
type Day struct {
	Date civil.Date `json:"date"`
	DailyRate
}

// Days returns the table sorted by date.
func (r DailyRates) Days() []Day {
	days := make([]Day, 0, len(r))
	for date, rate := range r {
		days = append(days, Day{Date: date, DailyRate: rate})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}
