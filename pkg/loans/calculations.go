// Package loans provides loan amortization and payoff calculations.
package loans

import (
	"math"

	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/mathutil"
)

// DebtType distinguishes debts for downstream categorisation. The numeric
// routines do not use it.
type DebtType string

// Known debt types.
const (
	DebtTypeMortgage DebtType = "mortgage"
	DebtTypeAuto     DebtType = "auto"
	DebtTypePersonal DebtType = "personal"
	DebtTypeOther    DebtType = "other"
)

// ParseDebtType maps a raw tag to a DebtType, defaulting to DebtTypeOther.
func ParseDebtType(tag string) DebtType {
	switch DebtType(tag) {
	case DebtTypeMortgage, DebtTypeAuto, DebtTypePersonal:
		return DebtType(tag)
	}
	return DebtTypeOther
}

// Debt is a single debt account.
type Debt struct {
	Name               string   `json:"name"`
	Balance            float64  `json:"balance"`
	MinimumPayment     float64  `json:"minimumPayment"`
	AnnualInterestRate float64  `json:"interestRate"`
	Type               DebtType `json:"type"`
}

// Normalized returns a copy of the debt with negative figures clamped to zero.
func (d Debt) Normalized() Debt {
	d.Balance = mathutil.ClampNonNegative(d.Balance)
	d.MinimumPayment = mathutil.ClampNonNegative(d.MinimumPayment)
	d.AnnualInterestRate = mathutil.ClampNonNegative(d.AnnualInterestRate)
	if d.Type == "" {
		d.Type = DebtTypeOther
	}
	return d
}

// MonthlyRate converts an annual percentage rate into a monthly decimal rate.
func MonthlyRate(annualInterestRate float64) float64 {
	return mathutil.ClampNonNegative(annualInterestRate) / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, downPayment, annualInterestRate float64, termMonths int) float64 {
	financed := mathutil.ClampNonNegative(principal - mathutil.ClampNonNegative(downPayment))
	if termMonths <= 0 || financed == 0 {
		return 0
	}

	periodicInterestRate := MonthlyRate(annualInterestRate)
	if periodicInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return financed / float64(termMonths)
	}

	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return financed * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return mathutil.ClampNonNegative(remainingPrincipal) * MonthlyRate(annualInterestRate)
}

// MonthsToPayoff returns the closed-form number of months needed to pay
// balance down to zero with a fixed monthly payment:
//
//	ln(p / (p - r*B)) / ln(1 + r)
//
// A zero rate falls back to B / p. The result is unavailable when the payment
// is zero or does not exceed the monthly interest, since the balance would
// never shrink.
func MonthsToPayoff(balance, payment, annualInterestRate float64) mathutil.Optional {
	balance = mathutil.ClampNonNegative(balance)
	payment = mathutil.ClampNonNegative(payment)

	if balance == 0 {
		return mathutil.Some(0)
	}
	if payment == 0 {
		return mathutil.Unavailable()
	}

	rate := MonthlyRate(annualInterestRate)
	if rate == 0 {
		return mathutil.Some(balance / payment)
	}

	remainder := payment - rate*balance
	if remainder <= 0 {
		return mathutil.Unavailable()
	}
	return mathutil.Some(math.Log(payment/remainder) / math.Log1p(rate))
}

// TotalInterest returns the interest paid over the life of the loan using the
// closed-form payoff time: payment * months - balance.
func TotalInterest(balance, payment, annualInterestRate float64) mathutil.Optional {
	months := MonthsToPayoff(balance, payment, annualInterestRate)
	if !months.Valid {
		return months
	}
	if MonthlyRate(annualInterestRate) == 0 || months.Value == 0 {
		return mathutil.Some(0)
	}
	total := mathutil.ClampNonNegative(payment)*months.Value - mathutil.ClampNonNegative(balance)
	return mathutil.Some(mathutil.ClampNonNegative(total))
}
