package reimbursement

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"travel-reimbursement/core/types"
)

func day(month time.Month, d int) civil.Date {
	return civil.Date{Year: 2024, Month: month, Day: d}
}

func oct(d int) civil.Date {
	return day(time.October, d)
}

func project(start, end civil.Date, zone types.CostZone) types.Project {
	return types.Project{Start: start, End: end, Zone: zone}
}

func record(start, end, zone string) types.Record {
	return types.Record{
		types.KeyStartDate: start,
		types.KeyEndDate:   end,
		types.KeyCostZone:  zone,
	}
}

func schedule(highTravel, highFull, lowTravel, lowFull int64) types.RateSchedule {
	return types.RateSchedule{
		HighTravel: decimal.NewFromInt(highTravel),
		HighFull:   decimal.NewFromInt(highFull),
		LowTravel:  decimal.NewFromInt(lowTravel),
		LowFull:    decimal.NewFromInt(lowFull),
	}
}

func rate(amount decimal.Decimal, zone types.CostZone, travel bool) types.DailyRate {
	return types.DailyRate{Rate: amount, Zone: zone, IsTravelDay: travel}
}
