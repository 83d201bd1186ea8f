// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"

	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/loans"
)

// ValidateNonNegative warns when a monetary or rate field will be coerced to
// zero. It returns an empty string for usable values.
func ValidateNonNegative(field string, value float64) string {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		return fmt.Sprintf("%s is not a finite number - treated as 0", field)
	case value < 0:
		return fmt.Sprintf("%s is negative (%.2f) - treated as 0", field, value)
	}
	return ""
}

// ValidatePayoff warns when a debt's payment never covers its monthly interest,
// meaning the balance cannot be paid off.
func ValidatePayoff(name string, balance, payment, annualInterestRate float64) string {
	if balance <= 0 {
		return ""
	}
	if payment <= 0 {
		return fmt.Sprintf("Debt '%s' has no monthly payment - payoff time unavailable", name)
	}
	if interest := loans.CalculateInterestPayment(balance, annualInterestRate); payment <= interest {
		return fmt.Sprintf("Debt '%s' payment (%.2f) does not cover monthly interest (%.2f) - payoff time unavailable",
			name, payment, interest)
	}
	return ""
}

// ValidateProjectionYears warns when a horizon falls outside the supported
// range and will be clamped.
func ValidateProjectionYears(field string, years int) string {
	if years < 0 {
		return fmt.Sprintf("%s is negative (%d) - treated as 0", field, years)
	}
	if years > constants.MaxProjectionYears {
		return fmt.Sprintf("%s exceeds %d years (%d) - clamped", field, constants.MaxProjectionYears, years)
	}
	return ""
}

// Collector accumulates non-empty warnings in order.
type Collector struct {
	warnings []string
}

// Add records warning unless it is empty.
func (c *Collector) Add(warning string) {
	if warning != "" {
		c.warnings = append(c.warnings, warning)
	}
}

// Addf records a formatted warning.
func (c *Collector) Addf(format string, args ...any) {
	c.Add(fmt.Sprintf(format, args...))
}

// Warnings returns the collected warnings.
func (c *Collector) Warnings() []string {
	return c.warnings
}
