package loans

import (
	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/mathutil"
)

// TotalBalance sums the balances of all debts.
func TotalBalance(debts []Debt) float64 {
	return mathutil.Sum(debts, func(d Debt) float64 { return mathutil.ClampNonNegative(d.Balance) })
}

// TotalMinimumPayment sums the monthly minimum payments of all debts.
func TotalMinimumPayment(debts []Debt) float64 {
	return mathutil.Sum(debts, func(d Debt) float64 { return mathutil.ClampNonNegative(d.MinimumPayment) })
}

// AnnualInterest estimates one year of interest on the current balances
// without amortizing them.
func AnnualInterest(debts []Debt) float64 {
	return mathutil.Sum(debts, func(d Debt) float64 {
		d = d.Normalized()
		return mathutil.ApplyPercentage(d.Balance, d.AnnualInterestRate)
	})
}

// MonthlyInterest is AnnualInterest spread evenly over twelve months.
func MonthlyInterest(debts []Debt) float64 {
	return AnnualInterest(debts) / constants.MonthsPerYear
}

// FilterByType returns the debts of the given type.
func FilterByType(debts []Debt, debtType DebtType) []Debt {
	var filtered []Debt
	for _, debt := range debts {
		if debt.Type == debtType {
			filtered = append(filtered, debt)
		}
	}
	return filtered
}
