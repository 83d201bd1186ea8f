// Package metrics derives aggregate ratios from normalized pay, debts and
// contributions.
//
// Every ratio guards its denominator: a zero income yields a zero
// percentage. Debt-to-income is always annual debt balance against annual
// gross income, and every monthly figure comes from payperiod equivalents.
package metrics

import (
	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/loans"
	"github.com/dielawn/personal-finance/pkg/mathutil"
	"github.com/dielawn/personal-finance/pkg/payperiod"
)

// Expenses are monthly spending figures. Missing figures are zero. Housing
// and Transport exclude loan payments, which are counted through the debts.
type Expenses struct {
	Housing       float64 `json:"housing"`
	Transport     float64 `json:"transport"`
	Recurring     float64 `json:"recurring"`
	Groceries     float64 `json:"groceries"`
	Clothing      float64 `json:"clothing"`
	DiningOut     float64 `json:"diningOut"`
	Entertainment float64 `json:"entertainment"`
}

func (e Expenses) normalized() Expenses {
	return Expenses{
		Housing:       mathutil.ClampNonNegative(e.Housing),
		Transport:     mathutil.ClampNonNegative(e.Transport),
		Recurring:     mathutil.ClampNonNegative(e.Recurring),
		Groceries:     mathutil.ClampNonNegative(e.Groceries),
		Clothing:      mathutil.ClampNonNegative(e.Clothing),
		DiningOut:     mathutil.ClampNonNegative(e.DiningOut),
		Entertainment: mathutil.ClampNonNegative(e.Entertainment),
	}
}

// Inputs gathers everything Summarize needs.
type Inputs struct {
	GrossPay payperiod.Equivalents
	NetPay   payperiod.Equivalents

	// PreTaxContributions are payroll deductions into savings (401(k)
	// employee share, employer match, HSA). PostTaxContributions come out of
	// net pay (IRA, savings).
	PreTaxContributions  payperiod.Equivalents
	PostTaxContributions payperiod.Equivalents

	// Employee401k and EmployerMatch401k are broken out to report
	// contribution percentages.
	Employee401k      payperiod.Equivalents
	EmployerMatch401k payperiod.Equivalents

	Debts    []loans.Debt
	Expenses Expenses
}

// Budget splits monthly outflow into needs, wants and savings.
type Budget struct {
	Needs     float64 `json:"needs"`
	Wants     float64 `json:"wants"`
	Transport float64 `json:"transport"`
	Savings   float64 `json:"savings"`
}

// Summary is the set of aggregate ratios and totals for one profile.
type Summary struct {
	PreTaxSavingsRatePercent  float64 `json:"preTaxSavingsRatePercent"`
	PostTaxSavingsRatePercent float64 `json:"postTaxSavingsRatePercent"`
	DebtToIncomeRatioPercent  float64 `json:"debtToIncomeRatioPercent"`
	MonthlyCashFlowRemainder  float64 `json:"monthlyCashFlowRemainder"`

	AnnualSavings               float64 `json:"annualSavings"`
	TotalDebt                   float64 `json:"totalDebt"`
	TotalMinimumMonthlyPayment  float64 `json:"totalMinimumMonthlyPayment"`
	MonthlyDebtInterest         float64 `json:"monthlyDebtInterest"`
	AnnualDebtInterest          float64 `json:"annualDebtInterest"`
	DebtToIncomeWithinGuideline bool    `json:"debtToIncomeWithinGuideline"`

	HousingRatioPercent    float64 `json:"housingRatioPercent"`
	HousingWithinGuideline bool    `json:"housingWithinGuideline"`

	EmployeeContributionPercent float64 `json:"employeeContributionPercent"`
	EmployerMatchPercent        float64 `json:"employerMatchPercent"`

	Budget Budget `json:"budget"`
}

// Summarize computes the aggregate summary. It performs only list reductions
// and guarded divisions, so it never fails.
func Summarize(in Inputs) Summary {
	expenses := in.Expenses.normalized()
	debts := make([]loans.Debt, 0, len(in.Debts))
	for _, debt := range in.Debts {
		debts = append(debts, debt.Normalized())
	}

	grossAnnual := mathutil.ClampNonNegative(in.GrossPay.Annual)
	netAnnual := mathutil.ClampNonNegative(in.NetPay.Annual)
	preTax := clampEquivalents(in.PreTaxContributions)
	postTax := clampEquivalents(in.PostTaxContributions)

	annualSavings := preTax.Annual + postTax.Annual
	totalDebt := loans.TotalBalance(debts)
	minimumPayments := loans.TotalMinimumPayment(debts)

	summary := Summary{
		PreTaxSavingsRatePercent:   mathutil.CalculatePercentage(annualSavings, grossAnnual),
		PostTaxSavingsRatePercent:  mathutil.CalculatePercentage(annualSavings, netAnnual),
		DebtToIncomeRatioPercent:   mathutil.CalculatePercentage(totalDebt, grossAnnual),
		AnnualSavings:              annualSavings,
		TotalDebt:                  totalDebt,
		TotalMinimumMonthlyPayment: minimumPayments,
		AnnualDebtInterest:         loans.AnnualInterest(debts),
		MonthlyDebtInterest:        loans.MonthlyInterest(debts),
	}

	mortgagePayments := loans.TotalMinimumPayment(loans.FilterByType(debts, loans.DebtTypeMortgage))
	summary.HousingRatioPercent = mathutil.CalculatePercentage(expenses.Housing+mortgagePayments, mathutil.ClampNonNegative(in.GrossPay.Monthly))

	summary.MonthlyCashFlowRemainder = mathutil.ClampNonNegative(in.NetPay.Monthly) -
		(expenses.Housing + expenses.Transport + minimumPayments + postTax.Monthly)

	summary.DebtToIncomeWithinGuideline = summary.DebtToIncomeRatioPercent <= constants.DebtToIncomeGuidelinePercent
	summary.HousingWithinGuideline = summary.HousingRatioPercent <= constants.HousingGuidelinePercent

	summary.EmployeeContributionPercent = mathutil.CalculatePercentage(mathutil.ClampNonNegative(in.Employee401k.Annual), grossAnnual)
	summary.EmployerMatchPercent = mathutil.CalculatePercentage(mathutil.ClampNonNegative(in.EmployerMatch401k.Annual), grossAnnual)

	personalPayments := loans.TotalMinimumPayment(loans.FilterByType(debts, loans.DebtTypePersonal))
	summary.Budget = Budget{
		Needs:     expenses.Housing + expenses.Groceries + expenses.Clothing + minimumPayments - personalPayments,
		Wants:     expenses.Recurring + personalPayments + expenses.DiningOut + expenses.Entertainment,
		Transport: expenses.Transport,
		Savings:   preTax.Monthly + postTax.Monthly,
	}

	return summary
}

func clampEquivalents(e payperiod.Equivalents) payperiod.Equivalents {
	return payperiod.Equivalents{
		Weekly:   mathutil.ClampNonNegative(e.Weekly),
		BiWeekly: mathutil.ClampNonNegative(e.BiWeekly),
		Monthly:  mathutil.ClampNonNegative(e.Monthly),
		Annual:   mathutil.ClampNonNegative(e.Annual),
	}
}
