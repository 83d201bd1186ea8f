// Package output provides utilities for formatting and displaying report results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dielawn/personal-finance/internal/config"
	"github.com/dielawn/personal-finance/internal/report"
	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/finance"
	"github.com/dielawn/personal-finance/pkg/format"
	"github.com/dielawn/personal-finance/pkg/loans"
	"github.com/dielawn/personal-finance/pkg/payperiod"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable set of
// tables to w.
func PrettyFormat(w io.Writer, result report.Report) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	writePay(&b, p, result.Pay)
	writeDebts(&b, p, result)
	writeProjection(&b, p, result)
	writeSummary(&b, result)

	if len(result.Warnings) > 0 {
		b.WriteString("--- Warnings ---\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "* %s\n", warning)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writePay(b *strings.Builder, p *message.Printer, pay *config.PayBreakdown) {
	if pay == nil {
		fmt.Fprintf(b, "--- Pay ---\n%s\n\n", format.Unavailable)
		return
	}
	fmt.Fprintf(b, "--- Pay (%s) ---\n", pay.Frequency)
	b.WriteString("Item | Weekly | Bi-weekly | Monthly | Annual\n")
	b.WriteString("____ | ______ | _________ | _______ | ______\n")
	rows := []struct {
		label string
		eq    payperiod.Equivalents
	}{
		{"Gross pay", pay.Gross},
		{"Net pay", pay.Net},
		{"401(k)", pay.Employee401k},
		{"401(k) match", pay.EmployerMatch401k},
		{"HSA", pay.HSA},
		{"IRA", pay.IRA},
		{"Savings", pay.Savings},
		{"Other post-tax", pay.OtherPostTax},
	}
	for _, row := range rows {
		b.WriteString(p.Sprintf("%s | $%.2f | $%.2f | $%.2f | $%.2f\n",
			row.label, row.eq.Weekly, row.eq.BiWeekly, row.eq.Monthly, row.eq.Annual))
	}
	b.WriteString("\n")
}

func writeDebts(b *strings.Builder, p *message.Printer, result report.Report) {
	if len(result.Debts) == 0 {
		return
	}
	b.WriteString("--- Debts ---\n")
	b.WriteString("Name | Balance | Payment | Rate | Payoff | Total interest\n")
	b.WriteString("____ | _______ | _______ | ____ | ______ | ______________\n")
	for _, debt := range result.Debts {
		fmt.Fprintf(b, "%s | %s | %s | %s | %s | %s\n",
			debt.Debt.Name,
			format.Currency(debt.Debt.Balance),
			format.Currency(debt.Debt.MinimumPayment),
			format.Percent(debt.Debt.AnnualInterestRate),
			format.OptionalMonths(debt.Amortization.MonthsToPayoff),
			format.OptionalCurrency(debt.Amortization.TotalInterest),
		)
	}
	b.WriteString("\n")

	for _, debt := range result.Debts {
		if len(debt.Amortization.Years) == 0 {
			continue
		}
		fmt.Fprintf(b, "--- Amortization for %s ---\n", debt.Debt.Name)
		writeAmortizationYears(b, p, debt.Amortization)
	}
}

func writeAmortizationYears(b *strings.Builder, p *message.Printer, schedule loans.Amortization) {
	b.WriteString("Year | Beginning | Interest | Principal | Ending\n")
	b.WriteString("____ | _________ | ________ | _________ | ______\n")
	for _, year := range schedule.Years {
		b.WriteString(p.Sprintf("%d | $%.2f | $%.2f | $%.2f | $%.2f\n",
			year.Year, year.BeginningBalance, year.InterestPaid, year.PrincipalPaid, year.EndingBalance))
	}
	if !schedule.Converged {
		fmt.Fprintf(b, "Not paid off within %d months at this payment\n", constants.MaxAmortizationMonths)
	}
	b.WriteString("\n")
}

// PrettyAmortization writes a single yearly amortization schedule followed by
// its payoff time and total interest.
func PrettyAmortization(w io.Writer, schedule loans.Amortization) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	b.WriteString("--- Amortization ---\n")
	writeAmortizationYears(&b, p, schedule)
	fmt.Fprintf(&b, "Months to payoff | %s\n", format.OptionalMonths(schedule.MonthsToPayoff))
	fmt.Fprintf(&b, "Total interest   | %s\n", format.OptionalCurrency(schedule.TotalInterest))
	_, err := io.WriteString(w, b.String())
	return err
}

// PrettyProjection writes a single growth series.
func PrettyProjection(w io.Writer, growthRatePercent float64, years []finance.ProjectionYear) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	fmt.Fprintf(&b, "--- Projection (%s growth) ---\n", format.Percent(growthRatePercent))
	b.WriteString("Year | Balance | Contributions | Growth\n")
	b.WriteString("____ | _______ | _____________ | ______\n")
	for _, year := range years {
		b.WriteString(p.Sprintf("%d | $%.2f | $%.2f | $%.2f\n",
			year.Year, year.Balance, year.CumulativeContributions, year.Growth()))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// PrettyEquivalents writes one amount in every pay period.
func PrettyEquivalents(w io.Writer, label string, eq payperiod.Equivalents) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	b.WriteString("Item | Weekly | Bi-weekly | Monthly | Annual\n")
	b.WriteString("____ | ______ | _________ | _______ | ______\n")
	b.WriteString(p.Sprintf("%s | $%.2f | $%.2f | $%.2f | $%.2f\n",
		label, eq.Weekly, eq.BiWeekly, eq.Monthly, eq.Annual))
	_, err := io.WriteString(w, b.String())
	return err
}

func writeProjection(b *strings.Builder, p *message.Printer, result report.Report) {
	if len(result.Projection.Accounts) == 0 {
		return
	}
	fmt.Fprintf(b, "--- Savings projection (%.2f%% default growth) ---\n", result.Assumptions.GrowthRatePercent)
	header := []string{"Year"}
	for _, account := range result.Projection.Accounts {
		header = append(header, account.Account.Name)
	}
	header = append(header, "Total")
	b.WriteString(strings.Join(header, " | ") + "\n")

	for _, total := range result.ProjectionTotals {
		cells := []string{p.Sprintf("%d", total.Year)}
		for _, account := range result.Projection.Accounts {
			if total.Year < len(account.Years) {
				cells = append(cells, p.Sprintf("$%.2f", account.Years[total.Year].Balance))
			}
		}
		cells = append(cells, p.Sprintf("$%.2f", total.Balance))
		b.WriteString(strings.Join(cells, " | ") + "\n")
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, result report.Report) {
	s := result.Summary
	b.WriteString("--- Summary ---\n")
	rows := [][2]string{
		{"Pre-tax savings rate", format.Percent(s.PreTaxSavingsRatePercent)},
		{"Post-tax savings rate", format.Percent(s.PostTaxSavingsRatePercent)},
		{"Annual savings", format.Currency(s.AnnualSavings)},
		{"Debt-to-income ratio", format.Percent(s.DebtToIncomeRatioPercent) + guideline(s.DebtToIncomeWithinGuideline)},
		{"Housing ratio", format.Percent(s.HousingRatioPercent) + guideline(s.HousingWithinGuideline)},
		{"Total debt", format.Currency(s.TotalDebt)},
		{"Minimum monthly payments", format.Currency(s.TotalMinimumMonthlyPayment)},
		{"Monthly debt interest", format.Currency(s.MonthlyDebtInterest)},
		{"Annual debt interest", format.Currency(s.AnnualDebtInterest)},
		{"401(k) contribution", format.Percent(s.EmployeeContributionPercent)},
		{"401(k) employer match", format.Percent(s.EmployerMatchPercent)},
		{"Monthly cash flow remainder", format.Currency(s.MonthlyCashFlowRemainder)},
		{"Budget needs", format.Currency(s.Budget.Needs)},
		{"Budget wants", format.Currency(s.Budget.Wants)},
		{"Budget transport", format.Currency(s.Budget.Transport)},
		{"Budget savings", format.Currency(s.Budget.Savings)},
	}
	for _, row := range rows {
		fmt.Fprintf(b, "%-28s | %s\n", row[0], row[1])
	}
	b.WriteString("\n")
}

func guideline(within bool) string {
	if within {
		return " (within guideline)"
	}
	return " (above guideline)"
}

// JSONFormat writes the report as indented JSON.
func JSONFormat(w io.Writer, result report.Report) error {
	return JSON(w, result)
}

// JSON writes any result as indented JSON.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
