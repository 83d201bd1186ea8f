package metrics

import (
	"testing"

	"github.com/dielawn/personal-finance/pkg/loans"
	"github.com/dielawn/personal-finance/pkg/payperiod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNormalize(t *testing.T, amount float64, freq payperiod.Frequency) payperiod.Equivalents {
	t.Helper()
	eq, err := payperiod.Normalize(amount, freq)
	require.NoError(t, err)
	return eq
}

func TestSummarizeRatios(t *testing.T) {
	gross := mustNormalize(t, 1000, payperiod.Monthly) // 12,000 a year
	net := mustNormalize(t, 800, payperiod.Monthly)    // 9,600 a year
	preTax := mustNormalize(t, 100, payperiod.Monthly)
	postTax := mustNormalize(t, 50, payperiod.Monthly)

	summary := Summarize(Inputs{
		GrossPay:             gross,
		NetPay:               net,
		PreTaxContributions:  preTax,
		PostTaxContributions: postTax,
		Debts: []loans.Debt{
			{Name: "Car", Balance: 2400, MinimumPayment: 100, AnnualInterestRate: 6, Type: loans.DebtTypeAuto},
			{Name: "Visa", Balance: 1200, MinimumPayment: 40, AnnualInterestRate: 20, Type: loans.DebtTypePersonal},
		},
		Expenses: Expenses{Housing: 300, Transport: 50},
	})

	assert.InDelta(t, 15.0, summary.PreTaxSavingsRatePercent, 1e-9)   // 1800 / 12000
	assert.InDelta(t, 18.75, summary.PostTaxSavingsRatePercent, 1e-9) // 1800 / 9600
	assert.InDelta(t, 30.0, summary.DebtToIncomeRatioPercent, 1e-9)   // 3600 / 12000
	assert.InDelta(t, 800-(300+50+140+50), summary.MonthlyCashFlowRemainder, 1e-9)

	assert.InDelta(t, 1800, summary.AnnualSavings, 1e-9)
	assert.InDelta(t, 3600, summary.TotalDebt, 1e-9)
	assert.InDelta(t, 140, summary.TotalMinimumMonthlyPayment, 1e-9)
	assert.InDelta(t, 144+240, summary.AnnualDebtInterest, 1e-9)
	assert.InDelta(t, 32, summary.MonthlyDebtInterest, 1e-9)
	assert.True(t, summary.DebtToIncomeWithinGuideline)
	assert.InDelta(t, 30.0, summary.HousingRatioPercent, 1e-9)
	assert.True(t, summary.HousingWithinGuideline)
}

func TestSummarizeZeroIncomeGuard(t *testing.T) {
	summary := Summarize(Inputs{
		PreTaxContributions:  mustNormalize(t, 100, payperiod.Weekly),
		PostTaxContributions: mustNormalize(t, 100, payperiod.Weekly),
		Debts:                []loans.Debt{{Name: "Visa", Balance: 5000, MinimumPayment: 100}},
		Expenses:             Expenses{Housing: 1000},
	})

	assert.Equal(t, 0.0, summary.PreTaxSavingsRatePercent)
	assert.Equal(t, 0.0, summary.PostTaxSavingsRatePercent)
	assert.Equal(t, 0.0, summary.DebtToIncomeRatioPercent)
	assert.Equal(t, 0.0, summary.HousingRatioPercent)
	assert.Equal(t, 0.0, summary.EmployeeContributionPercent)
	assert.Less(t, summary.MonthlyCashFlowRemainder, 0.0)
}

func TestSummarizeEmptyInputs(t *testing.T) {
	summary := Summarize(Inputs{})
	assert.Equal(t, Summary{DebtToIncomeWithinGuideline: true, HousingWithinGuideline: true}, summary)
}

func TestSummarizeCoercesNegativeInputs(t *testing.T) {
	summary := Summarize(Inputs{
		GrossPay:             payperiod.Equivalents{Monthly: 1000, Annual: 12000},
		NetPay:               payperiod.Equivalents{Monthly: 900, Annual: 10800},
		PostTaxContributions: payperiod.Equivalents{Monthly: -100, Annual: -1200},
		Debts:                []loans.Debt{{Balance: -5000, MinimumPayment: -100}},
		Expenses:             Expenses{Housing: -200, Transport: -10},
	})

	assert.Equal(t, 0.0, summary.PreTaxSavingsRatePercent)
	assert.Equal(t, 0.0, summary.TotalDebt)
	assert.InDelta(t, 900, summary.MonthlyCashFlowRemainder, 1e-9)
}

func TestSummarizeHousingIncludesMortgagePayment(t *testing.T) {
	summary := Summarize(Inputs{
		GrossPay: mustNormalize(t, 5000, payperiod.Monthly),
		Debts: []loans.Debt{
			{Name: "Mortgage", Balance: 240000, MinimumPayment: 1600, AnnualInterestRate: 6.5, Type: loans.DebtTypeMortgage},
		},
		Expenses: Expenses{Housing: 150},
	})

	assert.InDelta(t, 35.0, summary.HousingRatioPercent, 1e-9)
	assert.False(t, summary.HousingWithinGuideline)
	assert.InDelta(t, 400.0, summary.DebtToIncomeRatioPercent, 1e-9)
	assert.False(t, summary.DebtToIncomeWithinGuideline)
}

func TestSummarizeContributionPercents(t *testing.T) {
	summary := Summarize(Inputs{
		GrossPay:          mustNormalize(t, 2000, payperiod.BiWeekly),
		Employee401k:      mustNormalize(t, 120, payperiod.BiWeekly),
		EmployerMatch401k: mustNormalize(t, 60, payperiod.BiWeekly),
	})

	assert.InDelta(t, 6.0, summary.EmployeeContributionPercent, 1e-9)
	assert.InDelta(t, 3.0, summary.EmployerMatchPercent, 1e-9)
}

func TestSummarizeBudget(t *testing.T) {
	summary := Summarize(Inputs{
		PreTaxContributions:  payperiod.Equivalents{Monthly: 300},
		PostTaxContributions: payperiod.Equivalents{Monthly: 200},
		Debts: []loans.Debt{
			{Name: "Mortgage", MinimumPayment: 1500, Type: loans.DebtTypeMortgage},
			{Name: "Visa", MinimumPayment: 75, Type: loans.DebtTypePersonal},
		},
		Expenses: Expenses{
			Housing: 250, Transport: 180, Recurring: 40, Groceries: 600,
			Clothing: 50, DiningOut: 120, Entertainment: 60,
		},
	})

	assert.Equal(t, Budget{
		Needs:     250 + 600 + 50 + 1500,
		Wants:     40 + 75 + 120 + 60,
		Transport: 180,
		Savings:   500,
	}, summary.Budget)
}
