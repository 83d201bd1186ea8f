package validation

import (
	"math"
	"strings"
	"testing"
)

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		contains string
	}{
		{name: "Positive value", value: 12.5},
		{name: "Zero value", value: 0},
		{name: "Negative value", value: -5, contains: "is negative (-5.00)"},
		{name: "NaN value", value: math.NaN(), contains: "not a finite number"},
		{name: "Infinite value", value: math.Inf(1), contains: "not a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateNonNegative("pay.grossPay", tt.value)
			if tt.contains == "" {
				if warning != "" {
					t.Errorf("unexpected warning %q", warning)
				}
				return
			}
			if !strings.Contains(warning, tt.contains) || !strings.HasPrefix(warning, "pay.grossPay") {
				t.Errorf("warning %q does not mention field and %q", warning, tt.contains)
			}
		})
	}
}

func TestValidatePayoff(t *testing.T) {
	tests := []struct {
		name     string
		balance  float64
		payment  float64
		rate     float64
		wantWarn bool
	}{
		{name: "Payment covers interest", balance: 10000, payment: 200, rate: 6},
		{name: "Paid off debt", balance: 0, payment: 0, rate: 20},
		{name: "No payment", balance: 5000, payment: 0, rate: 10, wantWarn: true},
		{name: "Payment just below interest", balance: 12000, payment: 119.99, rate: 12, wantWarn: true},
		{name: "Payment below interest", balance: 10000, payment: 40, rate: 6, wantWarn: true},
		{name: "Zero rate any payment", balance: 10000, payment: 1, rate: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidatePayoff("Loan", tt.balance, tt.payment, tt.rate)
			if (warning != "") != tt.wantWarn {
				t.Errorf("ValidatePayoff() = %q, wantWarn %v", warning, tt.wantWarn)
			}
		})
	}
}

func TestValidateProjectionYears(t *testing.T) {
	if w := ValidateProjectionYears("projection.years", 30); w != "" {
		t.Errorf("unexpected warning %q", w)
	}
	if w := ValidateProjectionYears("projection.years", -1); w == "" {
		t.Error("expected warning for negative years")
	}
	if w := ValidateProjectionYears("projection.years", 101); !strings.Contains(w, "clamped") {
		t.Errorf("expected clamp warning, got %q", w)
	}
}

func TestCollector(t *testing.T) {
	var c Collector
	c.Add("")
	c.Add("first")
	c.Addf("second %d", 2)
	c.Add(ValidateNonNegative("ok", 1))

	got := c.Warnings()
	if len(got) != 2 || got[0] != "first" || got[1] != "second 2" {
		t.Errorf("Warnings() = %v", got)
	}
}
