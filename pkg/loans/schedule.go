package loans

import (
	"fmt"

	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/mathutil"
	"go.uber.org/zap"
)

// YearEntry summarises one year of an amortization schedule.
type YearEntry struct {
	Year             int     `json:"year"`
	BeginningBalance float64 `json:"beginningBalance"`
	InterestPaid     float64 `json:"interestPaid"`
	PrincipalPaid    float64 `json:"principalPaid"`
	EndingBalance    float64 `json:"endingBalance"`
}

// Amortization is the simulated payoff of one debt plus its closed-form
// payoff statistics.
type Amortization struct {
	Years []YearEntry `json:"years"`

	// MonthsToPayoff and TotalInterest come from the closed-form solution and
	// are unavailable when the payment never covers the interest.
	MonthsToPayoff mathutil.Optional `json:"monthsToPayoff"`
	TotalInterest  mathutil.Optional `json:"totalInterest"`

	// SimulatedMonths and SimulatedInterest come from the month-by-month
	// simulation, which stops after constants.MaxAmortizationMonths.
	SimulatedMonths   int     `json:"simulatedMonths"`
	SimulatedInterest float64 `json:"simulatedInterest"`

	// Converged is true when the simulation reached a zero balance.
	Converged bool `json:"converged"`
}

// FinalBalance returns the ending balance of the last simulated year, or zero
// for an empty schedule.
func (a Amortization) FinalBalance() float64 {
	if len(a.Years) == 0 {
		return 0
	}
	return a.Years[len(a.Years)-1].EndingBalance
}

// Schedule simulates paying balance with a fixed monthly payment at the given
// annual rate and groups the result by year. Each month the interest accrues
// on the remaining balance and the rest of the payment, capped at the
// remaining balance, reduces principal. A year closes every 12 months or when
// the balance reaches zero. The simulation never runs longer than
// constants.MaxAmortizationMonths, so a payment that does not cover interest
// still yields a bounded (and growing) series.
func Schedule(balance, payment, annualInterestRate float64) Amortization {
	balance = mathutil.ClampNonNegative(balance)
	payment = mathutil.ClampNonNegative(payment)
	annualInterestRate = mathutil.ClampNonNegative(annualInterestRate)

	result := Amortization{
		Years:          []YearEntry{},
		MonthsToPayoff: MonthsToPayoff(balance, payment, annualInterestRate),
		TotalInterest:  TotalInterest(balance, payment, annualInterestRate),
	}
	if balance == 0 {
		result.Converged = true
		return result
	}

	rate := MonthlyRate(annualInterestRate)
	remaining := balance
	entry := YearEntry{Year: 1, BeginningBalance: remaining}

	for month := 1; month <= constants.MaxAmortizationMonths && remaining > 0; month++ {
		interest := remaining * rate
		principal := min(payment-interest, remaining)
		remaining -= principal

		// Sub-cent residue is machine error, not an outstanding balance.
		if remaining > 0 && mathutil.Round(remaining) == 0 {
			principal += remaining
			remaining = 0
		}

		entry.InterestPaid += interest
		entry.PrincipalPaid += principal
		result.SimulatedInterest += interest
		result.SimulatedMonths = month

		if month%constants.MonthsPerYear == 0 || remaining <= 0 {
			entry.EndingBalance = remaining
			result.Years = append(result.Years, entry)
			entry = YearEntry{Year: entry.Year + 1, BeginningBalance: remaining}
		}
	}

	result.Converged = remaining <= 0
	return result
}

// ScheduleGenerator produces amortization schedules for debts and logs
// schedules that hit the simulation cap.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// DebtSchedule pairs a debt with its amortization.
type DebtSchedule struct {
	Debt         Debt         `json:"debt"`
	Amortization Amortization `json:"amortization"`
}

// GenerateSchedule creates the amortization schedule for a single debt.
func (g *ScheduleGenerator) GenerateSchedule(debt Debt) Amortization {
	debt = debt.Normalized()
	schedule := Schedule(debt.Balance, debt.MinimumPayment, debt.AnnualInterestRate)

	if !schedule.Converged {
		g.logger.Debug(fmt.Sprintf("debt %s not paid off within %d months; ending balance %.2f",
			debt.Name, constants.MaxAmortizationMonths, schedule.FinalBalance()),
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("payment", debt.MinimumPayment),
			zap.Float64("monthlyInterest", CalculateInterestPayment(debt.Balance, debt.AnnualInterestRate)),
		)
	}
	if !schedule.MonthsToPayoff.Valid {
		g.logger.Debug(fmt.Sprintf("payment for debt %s does not cover accruing interest", debt.Name),
			zap.String("op", "loans.GenerateSchedule"),
		)
	}
	return schedule
}

// GenerateSchedules creates amortization schedules for every debt, preserving order.
func (g *ScheduleGenerator) GenerateSchedules(debts []Debt) []DebtSchedule {
	schedules := make([]DebtSchedule, 0, len(debts))
	for _, debt := range debts {
		normalized := debt.Normalized()
		schedules = append(schedules, DebtSchedule{
			Debt:         normalized,
			Amortization: g.GenerateSchedule(normalized),
		})
	}
	return schedules
}
