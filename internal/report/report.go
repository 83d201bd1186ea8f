// Package report defines the data structures related to a household report
// and includes the pipeline that computes one from a profile.
package report

import (
	"fmt"

	"github.com/dielawn/personal-finance/internal/config"
	"github.com/dielawn/personal-finance/pkg/finance"
	"github.com/dielawn/personal-finance/pkg/loans"
	"github.com/dielawn/personal-finance/pkg/metrics"
	"go.uber.org/zap"
)

// Report holds every figure derived from one profile.
type Report struct {
	// Pay is nil when the pay frequency is not recognised.
	Pay              *config.PayBreakdown     `json:"pay"`
	Debts            []loans.DebtSchedule     `json:"debts"`
	Projection       finance.MultiProjection  `json:"projection"`
	ProjectionTotals []finance.ProjectionYear `json:"projectionTotals"`
	Assumptions      finance.Defaults         `json:"assumptions"`
	Summary          metrics.Summary          `json:"summary"`
	Warnings         []string                 `json:"warnings"`
}

// Options carries the account schema and growth assumptions used for a run.
type Options struct {
	Schema   finance.CategorySchema
	Defaults finance.Defaults
}

// DefaultOptions returns the built-in category schema and assumptions.
func DefaultOptions() Options {
	return Options{
		Schema:   finance.DefaultCategorySchema(),
		Defaults: finance.DefaultAssumptions(),
	}
}

// GetReport runs the whole engine for profile. It never fails: unusable
// values are coerced and described in Report.Warnings.
func GetReport(logger *zap.Logger, profile config.Profile, opts Options) Report {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := Report{Warnings: profile.ValidateConfiguration()}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}

	var inputs metrics.Inputs
	var contributions finance.Contributions
	breakdown, err := profile.PayBreakdown()
	if err != nil {
		logger.Warn(fmt.Sprintf("pay figures unavailable: %v", err),
			zap.String("op", "report.GetReport"),
		)
	} else {
		result.Pay = &breakdown
		inputs.GrossPay = breakdown.Gross
		inputs.NetPay = breakdown.Net
		inputs.PreTaxContributions = breakdown.PreTax()
		inputs.PostTaxContributions = breakdown.PostTax()
		inputs.Employee401k = breakdown.Employee401k
		inputs.EmployerMatch401k = breakdown.EmployerMatch401k
		contributions = breakdown.Contributions()
	}

	debts := profile.AllDebts()
	result.Debts = loans.NewScheduleGenerator(logger).GenerateSchedules(debts)
	inputs.Debts = debts
	inputs.Expenses = profile.MonthlyExpenses()

	projector := finance.NewProjector(logger, opts.Defaults)
	accounts := finance.BuildSavingsAccounts(profile.AccountRecords(), contributions, opts.Schema, projector.Defaults())
	result.Projection = projector.ProjectAccounts(accounts, profile.Projection.Years)
	result.ProjectionTotals = result.Projection.Totals()
	result.Assumptions = projector.Defaults()

	result.Summary = metrics.Summarize(inputs)

	logger.Debug(fmt.Sprintf("report computed with %d debts, %d accounts and %d warnings",
		len(result.Debts), len(result.Projection.Accounts), len(result.Warnings)),
		zap.String("op", "report.GetReport"),
	)
	return result
}
