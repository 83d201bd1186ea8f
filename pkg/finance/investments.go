// Package finance projects the growth of savings and investment accounts.
package finance

import (
	"fmt"

	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/mathutil"
	"go.uber.org/zap"
)

// Defaults holds the growth assumptions applied to accounts that do not
// specify their own. It is passed explicitly to every projection.
type Defaults struct {
	GrowthRatePercent float64 `json:"growthRatePercent"`
	HorizonYears      int     `json:"horizonYears"`
}

// DefaultAssumptions returns the standard 7% growth over 30 years.
func DefaultAssumptions() Defaults {
	return Defaults{
		GrowthRatePercent: constants.DefaultGrowthRatePercent,
		HorizonYears:      constants.DefaultHorizonYears,
	}
}

// normalized clamps the defaults into a usable range.
func (d Defaults) normalized() Defaults {
	d.GrowthRatePercent = mathutil.ClampNonNegative(d.GrowthRatePercent)
	d.HorizonYears = clampYears(d.HorizonYears)
	return d
}

// SavingsAccount is an account projected forward under annual compounding.
type SavingsAccount struct {
	Name               string          `json:"name"`
	Category           AccountCategory `json:"category"`
	InitialBalance     float64         `json:"initialBalance"`
	AnnualContribution float64         `json:"annualContribution"`
	GrowthRatePercent  float64         `json:"growthRatePercent"`
	HorizonYears       int             `json:"horizonYears"`
}

// WithGrowthRate returns a copy of the account using rate. Callers re-run the
// projection with the new value rather than patching an existing series.
func (a SavingsAccount) WithGrowthRate(rate float64) SavingsAccount {
	a.GrowthRatePercent = mathutil.ClampNonNegative(rate)
	return a
}

func (a SavingsAccount) normalized() SavingsAccount {
	a.InitialBalance = mathutil.ClampNonNegative(a.InitialBalance)
	a.AnnualContribution = mathutil.ClampNonNegative(a.AnnualContribution)
	a.GrowthRatePercent = mathutil.ClampNonNegative(a.GrowthRatePercent)
	a.HorizonYears = clampYears(a.HorizonYears)
	return a
}

// ProjectionYear is the state of a projected balance at the end of a year.
// Year 0 is the starting state.
type ProjectionYear struct {
	Year                    int     `json:"year"`
	Balance                 float64 `json:"balance"`
	CumulativeContributions float64 `json:"cumulativeContributions"`
}

// Growth returns the portion of the balance not explained by contributions.
func (p ProjectionYear) Growth() float64 {
	return p.Balance - p.CumulativeContributions
}

// Project compounds initialBalance once per year at growthRatePercent and adds
// annualContribution after each compounding, for the given number of years.
// The returned series has years+1 entries; entry 0 is the seed state where
// balance and cumulative contributions both equal the initial balance.
func Project(initialBalance, annualContribution, growthRatePercent float64, years int) []ProjectionYear {
	account := SavingsAccount{
		InitialBalance:     initialBalance,
		AnnualContribution: annualContribution,
		GrowthRatePercent:  growthRatePercent,
		HorizonYears:       years,
	}.normalized()

	series := make([]ProjectionYear, 0, account.HorizonYears+1)
	state := seed(account)
	series = append(series, state)
	for year := 1; year <= account.HorizonYears; year++ {
		state = step(state, account)
		series = append(series, state)
	}
	return series
}

func seed(account SavingsAccount) ProjectionYear {
	return ProjectionYear{
		Year:                    0,
		Balance:                 account.InitialBalance,
		CumulativeContributions: account.InitialBalance,
	}
}

func step(previous ProjectionYear, account SavingsAccount) ProjectionYear {
	return ProjectionYear{
		Year:                    previous.Year + 1,
		Balance:                 previous.Balance*(1+account.GrowthRatePercent/constants.PercentageMultiplier) + account.AnnualContribution,
		CumulativeContributions: previous.CumulativeContributions + account.AnnualContribution,
	}
}

func clampYears(years int) int {
	if years < 0 {
		return 0
	}
	if years > constants.MaxProjectionYears {
		return constants.MaxProjectionYears
	}
	return years
}

// AccountProjection is the full series for one account on a shared year axis.
type AccountProjection struct {
	Account SavingsAccount   `json:"account"`
	Years   []ProjectionYear `json:"years"`
}

// Final returns the last entry of the series.
func (p AccountProjection) Final() ProjectionYear {
	if len(p.Years) == 0 {
		return ProjectionYear{}
	}
	return p.Years[len(p.Years)-1]
}

// MultiProjection holds several accounts projected over the same years.
type MultiProjection struct {
	Years    int                 `json:"years"`
	Accounts []AccountProjection `json:"accounts"`
}

// Totals sums every account for each year of the shared axis.
func (m MultiProjection) Totals() []ProjectionYear {
	totals := make([]ProjectionYear, m.Years+1)
	for year := range totals {
		totals[year].Year = year
	}
	for _, account := range m.Accounts {
		for _, entry := range account.Years {
			if entry.Year < len(totals) {
				totals[entry.Year].Balance += entry.Balance
				totals[entry.Year].CumulativeContributions += entry.CumulativeContributions
			}
		}
	}
	return totals
}

// Final returns the combined totals for the last year of the axis.
func (m MultiProjection) Final() ProjectionYear {
	totals := m.Totals()
	return totals[len(totals)-1]
}

// Projector projects accounts using a fixed set of default assumptions.
type Projector struct {
	logger   *zap.Logger
	defaults Defaults
}

// NewProjector creates a projector. A nil logger is replaced with a no-op
// logger.
func NewProjector(logger *zap.Logger, defaults Defaults) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{logger: logger, defaults: defaults.normalized()}
}

// Defaults returns the assumptions used for accounts lacking their own.
func (p *Projector) Defaults() Defaults {
	return p.defaults
}

// ProjectAccounts projects every account on a shared axis running from year
// 0 to the largest of years, every account horizon, and the default horizon.
// An account stops growing and receiving contributions once its own horizon
// has passed; its balance is carried forward unchanged for the remaining
// years.
func (p *Projector) ProjectAccounts(accounts []SavingsAccount, years int) MultiProjection {
	axis := max(clampYears(years), p.defaults.HorizonYears)
	normalized := make([]SavingsAccount, 0, len(accounts))
	for _, account := range accounts {
		account = account.normalized()
		axis = max(axis, account.HorizonYears)
		normalized = append(normalized, account)
	}

	result := MultiProjection{Years: axis, Accounts: make([]AccountProjection, 0, len(normalized))}
	for _, account := range normalized {
		series := make([]ProjectionYear, 0, axis+1)
		state := seed(account)
		series = append(series, state)
		for year := 1; year <= axis; year++ {
			if year <= account.HorizonYears {
				state = step(state, account)
			} else {
				state.Year = year
			}
			series = append(series, state)
		}

		p.logger.Debug(fmt.Sprintf("projected account %s over %d years", account.Name, axis),
			zap.String("op", "finance.ProjectAccounts"),
			zap.Int("horizonYears", account.HorizonYears),
			zap.Float64("finalBalance", series[len(series)-1].Balance),
		)
		result.Accounts = append(result.Accounts, AccountProjection{Account: account, Years: series})
	}
	return result
}
