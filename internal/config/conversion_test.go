package config

import (
	"errors"
	"testing"

	"github.com/dielawn/personal-finance/pkg/finance"
	"github.com/dielawn/personal-finance/pkg/loans"
	"github.com/dielawn/personal-finance/pkg/metrics"
	"github.com/dielawn/personal-finance/pkg/payperiod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayBreakdown(t *testing.T) {
	profile := Profile{
		Pay: Pay{
			GrossPay:       2000,
			NetPay:         1500,
			PayFrequency:   "Bi-Weekly",
			Retirement401k: 100,
			HSA:            20,
			Match401k:      50,
		},
		PostTaxContributions: []Contribution{
			{Category: "savings", Amount: 40},
			{Category: "ira", Amount: 30},
			{Category: "savings", Amount: 10},
			{Category: "brokerage", Amount: 5},
		},
	}

	breakdown, err := profile.PayBreakdown()
	require.NoError(t, err)

	assert.Equal(t, payperiod.BiWeekly, breakdown.Frequency)
	assert.InDelta(t, 52000, breakdown.Gross.Annual, 1e-9)
	assert.InDelta(t, 39000, breakdown.Net.Annual, 1e-9)
	assert.InDelta(t, 1300, breakdown.Savings.Annual, 1e-9)
	assert.InDelta(t, 780, breakdown.IRA.Annual, 1e-9)
	assert.InDelta(t, 130, breakdown.OtherPostTax.Annual, 1e-9)
	assert.InDelta(t, (100+20+50)*26.0, breakdown.PreTax().Annual, 1e-9)
	assert.InDelta(t, (40+30+10+5)*26.0, breakdown.PostTax().Annual, 1e-9)

	contributions := breakdown.Contributions()
	assert.InDelta(t, 2600, contributions.Employee401k, 1e-9)
	assert.InDelta(t, 1300, contributions.EmployerMatch, 1e-9)
	assert.InDelta(t, 520, contributions.HSA, 1e-9)
	assert.InDelta(t, 780, contributions.IRA, 1e-9)
	assert.InDelta(t, 1300, contributions.Savings, 1e-9)
}

func TestPayBreakdownUnknownFrequency(t *testing.T) {
	profile := Profile{Pay: Pay{GrossPay: 1000, PayFrequency: "daily"}}

	breakdown, err := profile.PayBreakdown()
	require.Error(t, err)
	assert.True(t, errors.Is(err, payperiod.ErrUnknownFrequency))
	assert.Equal(t, PayBreakdown{}, breakdown)
}

func TestAllDebts(t *testing.T) {
	profile := Profile{
		Debts: []DebtEntry{
			{Name: " Visa ", Balance: 3000, MinimumPayment: 90, InterestRate: 22.9, Type: "personal"},
			{Name: "Family", Balance: 500, MinimumPayment: 50, Type: ""},
		},
		Housing: Housing{MortgageBalance: 175000, InterestRate: 4.5, TermMonths: 360},
		Vehicles: []Vehicle{
			{Name: "Truck", LoanBalance: 20000, InterestRate: 5, Payment: 400},
			{LoanBalance: 6000, InterestRate: 0, TermMonths: 24},
			{Name: "Paid off", LoanBalance: 0, Fuel: 80},
		},
	}

	debts := profile.AllDebts()
	require.Len(t, debts, 5)

	assert.Equal(t, loans.Debt{Name: "Visa", Balance: 3000, MinimumPayment: 90, AnnualInterestRate: 22.9, Type: loans.DebtTypePersonal}, debts[0])
	assert.Equal(t, loans.DebtTypeOther, debts[1].Type)

	mortgage := debts[2]
	assert.Equal(t, MortgageDebtName, mortgage.Name)
	assert.Equal(t, loans.DebtTypeMortgage, mortgage.Type)
	assert.Equal(t, 886.70, mortgage.MinimumPayment)

	assert.Equal(t, "Truck", debts[3].Name)
	assert.Equal(t, 400.0, debts[3].MinimumPayment)
	assert.Equal(t, loans.DebtTypeAuto, debts[3].Type)

	assert.Equal(t, "Vehicle 2", debts[4].Name)
	assert.Equal(t, 250.0, debts[4].MinimumPayment)
}

func TestAllDebtsWithoutTermOrPayment(t *testing.T) {
	profile := Profile{Housing: Housing{MortgageBalance: 100000, InterestRate: 5}}

	debts := profile.AllDebts()
	require.Len(t, debts, 1)
	assert.Equal(t, 0.0, debts[0].MinimumPayment)
	assert.NotEmpty(t, profile.ValidateConfiguration())
}

func TestMonthlyExpenses(t *testing.T) {
	profile := Profile{
		Housing: Housing{OtherMonthlyExpenses: 350, MonthlyPayment: 1600},
		Vehicles: []Vehicle{
			{Payment: 320, Fuel: 120, Insurance: 90, Maintenance: 40},
			{Fuel: 60, Insurance: -10},
		},
		Expenses: ExpenseEntries{Recurring: 80, Groceries: 500, Clothing: 60, DiningOut: 150, Entertainment: 75},
	}

	assert.Equal(t, metrics.Expenses{
		Housing:       350,
		Transport:     310,
		Recurring:     80,
		Groceries:     500,
		Clothing:      60,
		DiningOut:     150,
		Entertainment: 75,
	}, profile.MonthlyExpenses())
}

func TestAccountRecords(t *testing.T) {
	rate := 4.0
	horizon := 10
	profile := Profile{
		Accounts: []Account{
			{Name: "Work", Category: "401(k)", Balance: 42000},
			{Name: "Rainy day", Category: "Savings", Balance: 8000, GrowthRate: &rate, HorizonYears: &horizon},
			{Name: "Savings Bonds", Category: "bonds", Balance: 100},
		},
	}

	records := profile.AccountRecords()
	require.Len(t, records, 3)
	assert.Equal(t, finance.CategoryRetirement401k, records[0].Category)
	assert.Nil(t, records[0].GrowthRatePercent)
	assert.Equal(t, finance.CategorySavings, records[1].Category)
	assert.Equal(t, &rate, records[1].GrowthRatePercent)
	assert.Equal(t, &horizon, records[1].HorizonYears)
	// Category comes from the tag, never from the account name.
	assert.Equal(t, finance.CategoryGeneric, records[2].Category)
}
