package reimbursement

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/errors"
)

// Processor runs the full reimbursement pipeline against a rate schedule.
// It holds no mutable state and is safe for concurrent use.
type Processor struct {
	schedule types.RateSchedule
	logger   *zap.Logger
}

// Option configures a Processor
type Option func(*Processor)

// WithLogger sets the logger used for stage diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor creates a processor for the given schedule
func NewProcessor(schedule types.RateSchedule, opts ...Option) (*Processor, error) {
	if err := schedule.Validate(); err != nil {
		return nil, errors.Config("invalid rate schedule", err)
	}

	p := &Processor{
		schedule: schedule,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Schedule returns the rate schedule in use
func (p *Processor) Schedule() types.RateSchedule {
	return p.schedule
}

// Breakdown is a result together with the intermediate stages that produced it
type Breakdown struct {
	Result   *types.ReimbursementResult `json:"result"`
	Projects []types.Project            `json:"projects"`
	Merged   []types.Project            `json:"merged"`
	Days     []types.Day                `json:"days"`
}

// Process computes the reimbursement for a set of raw records
func (p *Processor) Process(ctx context.Context, records []types.Record) (*types.ReimbursementResult, error) {
	b, err := p.Breakdown(ctx, records)
	if err != nil {
		return nil, err
	}
	return b.Result, nil
}

// Breakdown computes the reimbursement and keeps every intermediate stage
func (p *Processor) Breakdown(ctx context.Context, records []types.Record) (*Breakdown, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		p.logger.Debug("no records to process")
		return &Breakdown{Result: &types.ReimbursementResult{Total: decimal.Zero}}, nil
	}

	projects, err := NormalizeRecords(records)
	if err != nil {
		p.logger.Debug("record normalization failed", zap.Error(err))
		return nil, err
	}

	merged := MergeProjects(projects)
	p.logger.Debug("merged projects",
		zap.Int("projects", len(projects)),
		zap.Int("merged", len(merged)))

	rates := CalculateDailyRates(merged, p.schedule)
	result := CalculateResult(rates)
	p.logger.Debug("resolved daily rates",
		zap.Int("days", len(rates)),
		zap.String("total", result.Total.StringFixed(2)))

	return &Breakdown{
		Result:   result,
		Projects: projects,
		Merged:   merged,
		Days:     rates.Days(),
	}, nil
}
