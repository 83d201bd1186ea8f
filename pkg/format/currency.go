// Package format renders monetary figures for human-readable output.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/dielawn/personal-finance/pkg/mathutil"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	return sign + formatted
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}

// Unavailable is the display text for a figure that cannot be computed.
const Unavailable = "N/A"

// OptionalCurrency formats value as Currency, or Unavailable when it is not set.
func OptionalCurrency(value mathutil.Optional) string {
	if !value.Valid {
		return Unavailable
	}
	return Currency(value.Value)
}

// Percent formats a percentage with two decimals (e.g., "12.50%").
func Percent(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Unavailable
	}
	return fmt.Sprintf("%.2f%%", value)
}

// Months formats a month count with one decimal (e.g., "57.7 months").
func Months(value float64) string {
	return fmt.Sprintf("%.1f months", value)
}

// OptionalMonths formats value as Months, or Unavailable when it is not set.
func OptionalMonths(value mathutil.Optional) string {
	if !value.Valid {
		return Unavailable
	}
	return Months(value.Value)
}
