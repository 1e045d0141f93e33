package services

import "moneta/internal/logger"

// ValuationJob adapts the investment batch recompute to the scheduler's
// Job interface. It runs once per calendar day.
type ValuationJob struct {
	investments InvestmentServicer
}

// NewValuationJob creates the daily valuation job.
func NewValuationJob(investments InvestmentServicer) *ValuationJob {
	return &ValuationJob{investments: investments}
}

// Name identifies the job in scheduler logs.
func (j *ValuationJob) Name() string { return "investment-valuation" }

// Run recomputes the derived valuation fields of every investment.
func (j *ValuationJob) Run() error {
	report, err := j.investments.RecomputeValuations()
	if err != nil {
		return err
	}

	logger.Get().Infow("valuation recompute finished",
		"total", report.Total,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return nil
}
