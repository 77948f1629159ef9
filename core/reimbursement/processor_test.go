package reimbursement

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/errors"
)

type expectation struct {
	total              decimal.Decimal
	highCostFullDays   int
	highCostTravelDays int
	lowCostFullDays    int
	lowCostTravelDays  int
}

func times(rate decimal.Decimal, n int64) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(n))
}

func sum(values ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, values...)
}

// fixtureSets are the reference scenarios; each returns fresh records so
// tests can shuffle them freely.
func fixtureSets(s types.RateSchedule) []struct {
	name    string
	records func() []types.Record
	want    expectation
} {
	return []struct {
		name    string
		records func() []types.Record
		want    expectation
	}{
		{
			name: "set 1: single low project",
			records: func() []types.Record {
				return []types.Record{
					record("2024-10-01", "2024-10-04", "low"),
				}
			},
			want: expectation{
				total:             sum(times(s.LowTravel, 2), times(s.LowFull, 2)),
				lowCostFullDays:   2,
				lowCostTravelDays: 2,
			},
		},
		{
			name: "set 2: high project shares a day with a low one",
			records: func() []types.Record {
				return []types.Record{
					record("2024-10-01", "2024-10-01", "low"),
					record("2024-10-02", "2024-10-06", "high"),
					record("2024-10-06", "2024-10-09", "low"),
				}
			},
			want: expectation{
				total:             sum(times(s.LowTravel, 2), times(s.LowFull, 2), times(s.HighFull, 5)),
				highCostFullDays:  5,
				lowCostFullDays:   2,
				lowCostTravelDays: 2,
			},
		},
		{
			name: "set 3: two sequences split by a gap",
			records: func() []types.Record {
				return []types.Record{
					record("2024-09-30", "2024-10-03", "low"),
					record("2024-10-05", "2024-10-07", "high"),
					record("2024-10-08", "2024-10-08", "high"),
				}
			},
			want: expectation{
				total: sum(
					times(s.LowTravel, 2), times(s.LowFull, 2),
					times(s.HighTravel, 2), times(s.HighFull, 2),
				),
				highCostFullDays:   2,
				highCostTravelDays: 2,
				lowCostFullDays:    2,
				lowCostTravelDays:  2,
			},
		},
		{
			name: "set 4: duplicates and overlapping high projects",
			records: func() []types.Record {
				return []types.Record{
					record("2024-10-01", "2024-10-01", "low"),
					record("2024-10-01", "2024-10-01", "low"),
					record("2024-10-02", "2024-10-03", "high"),
					record("2024-10-02", "2024-10-06", "high"),
				}
			},
			want: expectation{
				total:              sum(s.LowTravel, s.HighTravel, times(s.HighFull, 4)),
				highCostFullDays:   4,
				highCostTravelDays: 1,
				lowCostTravelDays:  1,
			},
		},
		{
			name: "set 5: low days hidden under high projects",
			records: func() []types.Record {
				return []types.Record{
					record("2024-10-01", "2024-10-01", "low"),
					record("2024-10-01", "2024-10-01", "high"),
					record("2024-10-02", "2024-10-02", "low"),
					record("2024-10-03", "2024-10-03", "low"),
					record("2024-10-02", "2024-10-05", "high"),
				}
			},
			want: expectation{
				total:              sum(times(s.HighTravel, 2), times(s.HighFull, 3)),
				highCostFullDays:   3,
				highCostTravelDays: 2,
			},
		},
		{
			name: "set 6: set 5 with zones inverted",
			records: func() []types.Record {
				return []types.Record{
					record("2024-10-01", "2024-10-01", "high"),
					record("2024-10-01", "2024-10-01", "low"),
					record("2024-10-02", "2024-10-02", "high"),
					record("2024-10-03", "2024-10-03", "high"),
					record("2024-10-02", "2024-10-05", "low"),
				}
			},
			want: expectation{
				total:              sum(s.LowTravel, s.LowFull, s.HighTravel, times(s.HighFull, 2)),
				highCostFullDays:   2,
				highCostTravelDays: 1,
				lowCostFullDays:    1,
				lowCostTravelDays:  1,
			},
		},
	}
}

func assertResult(t *testing.T, want expectation, got *types.ReimbursementResult) {
	t.Helper()
	assert.True(t, want.total.Equal(got.Total), "total: want %s, got %s", want.total, got.Total)
	assert.Equal(t, want.highCostFullDays, got.HighCostFullDays, "high cost full days")
	assert.Equal(t, want.highCostTravelDays, got.HighCostTravelDays, "high cost travel days")
	assert.Equal(t, want.lowCostFullDays, got.LowCostFullDays, "low cost full days")
	assert.Equal(t, want.lowCostTravelDays, got.LowCostTravelDays, "low cost travel days")
}

func newTestProcessor(t *testing.T, s types.RateSchedule) *Processor {
	t.Helper()
	p, err := NewProcessor(s, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return p
}

func TestProcessFixtureSets(t *testing.T) {
	schedules := map[string]types.RateSchedule{
		"default":        types.DefaultRateSchedule(),
		"travel cheaper": schedule(55, 85, 45, 75),
	}

	for scheduleName, s := range schedules {
		p := newTestProcessor(t, s)
		for _, set := range fixtureSets(s) {
			t.Run(scheduleName+"/"+set.name, func(t *testing.T) {
				got, err := p.Process(context.Background(), set.records())
				require.NoError(t, err)
				assertResult(t, set.want, got)
			})
		}
	}
}

func TestProcessIsOrderIndependent(t *testing.T) {
	s := types.DefaultRateSchedule()
	p := newTestProcessor(t, s)
	rng := rand.New(rand.NewSource(42))

	for _, set := range fixtureSets(s) {
		t.Run(set.name, func(t *testing.T) {
			records := set.records()
			for i := 0; i < 10; i++ {
				rng.Shuffle(len(records), func(a, b int) { records[a], records[b] = records[b], records[a] })
				got, err := p.Process(context.Background(), records)
				require.NoError(t, err)
				assertResult(t, set.want, got)
			}
		})
	}
}

func TestProcessDuplicatesDoNotDoubleCount(t *testing.T) {
	s := types.DefaultRateSchedule()
	p := newTestProcessor(t, s)

	single, err := p.Process(context.Background(), []types.Record{record("2024-10-01", "2024-10-04", "high")})
	require.NoError(t, err)

	doubled, err := p.Process(context.Background(), []types.Record{
		record("2024-10-01", "2024-10-04", "high"),
		record("2024-10-01", "2024-10-04", "HIGH"),
	})
	require.NoError(t, err)

	assert.True(t, single.Total.Equal(doubled.Total), "want %s, got %s", single.Total, doubled.Total)
	assert.Equal(t, single.TotalDays(), doubled.TotalDays())
	assert.Equal(t, 2, doubled.HighCostTravelDays)
	assert.Equal(t, 2, doubled.HighCostFullDays)
}

func TestBreakdownTotalsMatchDays(t *testing.T) {
	s := types.DefaultRateSchedule()
	p := newTestProcessor(t, s)

	for _, set := range fixtureSets(s) {
		t.Run(set.name, func(t *testing.T) {
			b, err := p.Breakdown(context.Background(), set.records())
			require.NoError(t, err)

			total := decimal.Zero
			for i, d := range b.Days {
				total = total.Add(d.Rate)
				if i > 0 {
					assert.True(t, b.Days[i-1].Date.Before(d.Date), "days must be sorted and distinct")
				}
			}
			assert.True(t, total.Equal(b.Result.Total))
			assert.Equal(t, len(b.Days), b.Result.TotalDays())
			assert.Len(t, b.Projects, len(set.records()))
			assert.LessOrEqual(t, len(b.Merged), len(b.Projects))
		})
	}
}

func TestProcessEmptyInput(t *testing.T) {
	p := newTestProcessor(t, types.DefaultRateSchedule())

	got, err := p.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, got.Total.IsZero())
	assert.Equal(t, 0, got.HighCostFullDays)
	assert.Equal(t, 0, got.HighCostTravelDays)
	assert.Equal(t, 0, got.LowCostFullDays)
	assert.Equal(t, 0, got.LowCostTravelDays)
}

func TestProcessPropagatesNormalizationErrors(t *testing.T) {
	p := newTestProcessor(t, types.DefaultRateSchedule())

	_, err := p.Process(context.Background(), []types.Record{
		record("2024-10-01", "2024-10-04", "low"),
		record("2024-10-05", "Oct 9", "low"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeFormat))
}

func TestProcessHonoursCancelledContext(t *testing.T) {
	p := newTestProcessor(t, types.DefaultRateSchedule())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, []types.Record{record("2024-10-01", "2024-10-04", "low")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProcessorRejectsNonPositiveRates(t *testing.T) {
	_, err := NewProcessor(schedule(85, 75, 0, 45))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestNewProcessorKeepsSchedule(t *testing.T) {
	s := schedule(90, 80, 60, 50)
	p, err := NewProcessor(s, WithLogger(zap.NewNop()))
	require.NoError(t, err)

	got := p.Schedule()
	assert.True(t, s.HighTravel.Equal(got.HighTravel))
	assert.True(t, s.HighFull.Equal(got.HighFull))
	assert.True(t, s.LowTravel.Equal(got.LowTravel))
	assert.True(t, s.LowFull.Equal(got.LowFull))
}
