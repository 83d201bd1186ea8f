package config

import (
	"fmt"
	"strings"

	"github.com/dielawn/personal-finance/pkg/finance"
	"github.com/dielawn/personal-finance/pkg/loans"
	"github.com/dielawn/personal-finance/pkg/mathutil"
	"github.com/dielawn/personal-finance/pkg/metrics"
	"github.com/dielawn/personal-finance/pkg/payperiod"
)

// Names given to debts synthesised from the housing and vehicle sections.
const (
	MortgageDebtName = "Mortgage"
	vehicleNameFmt   = "Vehicle %d"
)

// PayBreakdown holds every pay-derived figure normalized to all periods.
type PayBreakdown struct {
	Frequency         payperiod.Frequency   `json:"frequency"`
	Gross             payperiod.Equivalents `json:"gross"`
	Net               payperiod.Equivalents `json:"net"`
	Employee401k      payperiod.Equivalents `json:"employee401k"`
	EmployerMatch401k payperiod.Equivalents `json:"employerMatch401k"`
	HSA               payperiod.Equivalents `json:"hsa"`
	IRA               payperiod.Equivalents `json:"ira"`
	Savings           payperiod.Equivalents `json:"savings"`
	OtherPostTax      payperiod.Equivalents `json:"otherPostTax"`
}

// PreTax totals the payroll deductions that go into savings.
func (b PayBreakdown) PreTax() payperiod.Equivalents {
	return payperiod.Sum(b.Employee401k, b.EmployerMatch401k, b.HSA)
}

// PostTax totals the contributions saved out of net pay.
func (b PayBreakdown) PostTax() payperiod.Equivalents {
	return payperiod.Sum(b.IRA, b.Savings, b.OtherPostTax)
}

// Contributions returns the annual amounts that fund savings accounts.
func (b PayBreakdown) Contributions() finance.Contributions {
	return finance.Contributions{
		Employee401k:  b.Employee401k.Annual,
		EmployerMatch: b.EmployerMatch401k.Annual,
		HSA:           b.HSA.Annual,
		IRA:           b.IRA.Annual,
		Savings:       b.Savings.Annual,
	}
}

// PayBreakdown normalizes the paycheck and every per-paycheck contribution.
// An unrecognised pay frequency returns an error wrapping
// payperiod.ErrUnknownFrequency and a zero breakdown.
func (p *Profile) PayBreakdown() (PayBreakdown, error) {
	freq, err := payperiod.ParseFrequency(p.Pay.PayFrequency)
	if err != nil {
		return PayBreakdown{}, fmt.Errorf("pay frequency: %w", err)
	}

	normalize := func(amount float64) payperiod.Equivalents {
		// freq is already validated, so Normalize cannot fail here.
		eq, _ := payperiod.Normalize(amount, freq)
		return eq
	}

	breakdown := PayBreakdown{
		Frequency:         freq,
		Gross:             normalize(p.Pay.GrossPay),
		Net:               normalize(p.Pay.NetPay),
		Employee401k:      normalize(p.Pay.Retirement401k),
		EmployerMatch401k: normalize(p.Pay.Match401k),
		HSA:               normalize(p.Pay.HSA),
	}
	for _, contribution := range p.PostTaxContributions {
		eq := normalize(contribution.Amount)
		category, _ := finance.ParseAccountCategory(contribution.Category)
		switch category {
		case finance.CategoryIRA:
			breakdown.IRA = breakdown.IRA.Add(eq)
		case finance.CategorySavings:
			breakdown.Savings = breakdown.Savings.Add(eq)
		default:
			breakdown.OtherPostTax = breakdown.OtherPostTax.Add(eq)
		}
	}
	return breakdown, nil
}

// AllDebts returns the entered debts followed by the debts implied by the
// mortgage and vehicle loans. A mortgage or vehicle with a balance but no
// payment has its payment derived from its term.
func (p *Profile) AllDebts() []loans.Debt {
	debts := make([]loans.Debt, 0, len(p.Debts)+len(p.Vehicles)+1)
	for _, entry := range p.Debts {
		debts = append(debts, loans.Debt{
			Name:               strings.TrimSpace(entry.Name),
			Balance:            entry.Balance,
			MinimumPayment:     entry.MinimumPayment,
			AnnualInterestRate: entry.InterestRate,
			Type:               loans.ParseDebtType(entry.Type),
		})
	}

	if mathutil.IsPositive(p.Housing.MortgageBalance) {
		debts = append(debts, loans.Debt{
			Name:               MortgageDebtName,
			Balance:            p.Housing.MortgageBalance,
			MinimumPayment:     loanPayment(p.Housing.MortgageBalance, p.Housing.MonthlyPayment, p.Housing.InterestRate, p.Housing.TermMonths),
			AnnualInterestRate: p.Housing.InterestRate,
			Type:               loans.DebtTypeMortgage,
		})
	}

	for i, vehicle := range p.Vehicles {
		if !mathutil.IsPositive(vehicle.LoanBalance) {
			continue
		}
		name := strings.TrimSpace(vehicle.Name)
		if name == "" {
			name = fmt.Sprintf(vehicleNameFmt, i+1)
		}
		debts = append(debts, loans.Debt{
			Name:               name,
			Balance:            vehicle.LoanBalance,
			MinimumPayment:     loanPayment(vehicle.LoanBalance, vehicle.Payment, vehicle.InterestRate, vehicle.TermMonths),
			AnnualInterestRate: vehicle.InterestRate,
			Type:               loans.DebtTypeAuto,
		})
	}
	return debts
}

func loanPayment(balance, payment, annualInterestRate float64, termMonths int) float64 {
	if mathutil.IsPositive(payment) {
		return payment
	}
	return mathutil.Round(loans.CalculateMonthlyPayment(balance, 0, annualInterestRate, termMonths))
}

// MonthlyExpenses returns the monthly spending figures. Loan payments are
// excluded; they are counted through AllDebts.
func (p *Profile) MonthlyExpenses() metrics.Expenses {
	transport := mathutil.Sum(p.Vehicles, func(v Vehicle) float64 {
		return mathutil.ClampNonNegative(v.Fuel) + mathutil.ClampNonNegative(v.Insurance) + mathutil.ClampNonNegative(v.Maintenance)
	})
	return metrics.Expenses{
		Housing:       p.Housing.OtherMonthlyExpenses,
		Transport:     transport,
		Recurring:     p.Expenses.Recurring,
		Groceries:     p.Expenses.Groceries,
		Clothing:      p.Expenses.Clothing,
		DiningOut:     p.Expenses.DiningOut,
		Entertainment: p.Expenses.Entertainment,
	}
}

// AccountRecords converts the balance records, resolving each category tag
// exactly once. Unrecognised tags become generic accounts.
func (p *Profile) AccountRecords() []finance.AccountRecord {
	records := make([]finance.AccountRecord, 0, len(p.Accounts))
	for _, account := range p.Accounts {
		category, _ := finance.ParseAccountCategory(account.Category)
		records = append(records, finance.AccountRecord{
			Name:              account.Name,
			Category:          category,
			Balance:           account.Balance,
			GrowthRatePercent: account.GrowthRate,
			HorizonYears:      account.HorizonYears,
		})
	}
	return records
}
