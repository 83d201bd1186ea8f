// Package payperiod converts a periodic pay amount into its weekly, bi-weekly,
// monthly and annual equivalents.
//
// Two averaging bases are in play and they intentionally disagree: annual
// figures use whole periods per year (52 weeks, 26 bi-weekly periods, 12
// months) while monthly figures use the truncated calendar averages 4.33
// weeks and 2.165 bi-weekly periods per month. A weekly amount therefore has
// Monthly*12 = amount*51.96, not amount*52. Both are correct for their
// purpose and no other package converts between pay periods.
package payperiod

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/mathutil"
)

// ErrUnknownFrequency is returned for a pay frequency tag that is not weekly,
// bi-weekly or monthly.
var ErrUnknownFrequency = errors.New("unknown pay frequency")

// Frequency is the cadence at which a paycheck amount recurs.
type Frequency string

// Supported pay frequencies.
const (
	Weekly   Frequency = "weekly"
	BiWeekly Frequency = "bi-weekly"
	Monthly  Frequency = "monthly"
)

// Valid reports whether f is a recognised frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, BiWeekly, Monthly:
		return true
	}
	return false
}

// ParseFrequency resolves a raw frequency tag. Matching is case-insensitive
// and accepts "biweekly" and "bi_weekly" for bi-weekly.
func ParseFrequency(tag string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "weekly":
		return Weekly, nil
	case "bi-weekly", "biweekly", "bi_weekly":
		return BiWeekly, nil
	case "monthly":
		return Monthly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, tag)
}

// Equivalents holds one amount expressed in each canonical pay period.
type Equivalents struct {
	Weekly   float64 `json:"weekly"`
	BiWeekly float64 `json:"biWeekly"`
	Monthly  float64 `json:"monthly"`
	Annual   float64 `json:"annual"`
}

// Amount is a non-negative monetary value tagged with its pay frequency.
type Amount struct {
	Value     float64
	Frequency Frequency
}

// Equivalents normalizes the amount.
func (a Amount) Equivalents() (Equivalents, error) {
	return Normalize(a.Value, a.Frequency)
}

// Normalize converts amount, paid at freq, into all four equivalents.
// Negative amounts are treated as zero. An unrecognised frequency yields
// ErrUnknownFrequency and a zero Equivalents, never a partial one.
func Normalize(amount float64, freq Frequency) (Equivalents, error) {
	amount = mathutil.ClampNonNegative(amount)

	switch freq {
	case Weekly:
		return Equivalents{
			Weekly:   amount,
			BiWeekly: amount * constants.WeeksPerBiWeeklyPeriod,
			Monthly:  amount * constants.WeeksPerMonth,
			Annual:   amount * constants.WeeksPerYear,
		}, nil
	case BiWeekly:
		return Equivalents{
			Weekly:   amount / constants.WeeksPerBiWeeklyPeriod,
			BiWeekly: amount,
			Monthly:  amount * constants.BiWeeklyPeriodsPerYear / constants.MonthsPerYear,
			Annual:   amount * constants.BiWeeklyPeriodsPerYear,
		}, nil
	case Monthly:
		return Equivalents{
			Weekly:   amount / constants.WeeksPerMonth,
			BiWeekly: amount / constants.BiWeeklyPeriodsPerMonth,
			Monthly:  amount,
			Annual:   amount * constants.MonthsPerYear,
		}, nil
	}
	return Equivalents{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, string(freq))
}

// NormalizeTag parses tag and normalizes amount with the result.
func NormalizeTag(amount float64, tag string) (Equivalents, error) {
	freq, err := ParseFrequency(tag)
	if err != nil {
		return Equivalents{}, err
	}
	return Normalize(amount, freq)
}

// Inverse recovers the source amount of eq for the frequency it was
// normalized from.
func Inverse(eq Equivalents, freq Frequency) (float64, error) {
	switch freq {
	case Weekly:
		return eq.Annual / constants.WeeksPerYear, nil
	case BiWeekly:
		return eq.Annual / constants.BiWeeklyPeriodsPerYear, nil
	case Monthly:
		return eq.Annual / constants.MonthsPerYear, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFrequency, string(freq))
}

// For returns the equivalent for freq.
func (e Equivalents) For(freq Frequency) (float64, error) {
	switch freq {
	case Weekly:
		return e.Weekly, nil
	case BiWeekly:
		return e.BiWeekly, nil
	case Monthly:
		return e.Monthly, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFrequency, string(freq))
}

// Add sums two sets of equivalents field by field.
func (e Equivalents) Add(other Equivalents) Equivalents {
	return Equivalents{
		Weekly:   e.Weekly + other.Weekly,
		BiWeekly: e.BiWeekly + other.BiWeekly,
		Monthly:  e.Monthly + other.Monthly,
		Annual:   e.Annual + other.Annual,
	}
}

// Scale multiplies every field by factor.
func (e Equivalents) Scale(factor float64) Equivalents {
	return Equivalents{
		Weekly:   e.Weekly * factor,
		BiWeekly: e.BiWeekly * factor,
		Monthly:  e.Monthly * factor,
		Annual:   e.Annual * factor,
	}
}

// Sum adds a list of equivalents.
func Sum(items ...Equivalents) Equivalents {
	var total Equivalents
	for _, item := range items {
		total = total.Add(item)
	}
	return total
}
