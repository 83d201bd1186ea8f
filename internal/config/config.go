// Package config defines the data structures related to configuration and
// includes functions for loading, parsing and validating a household profile.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/dielawn/personal-finance/pkg/finance"
	"github.com/dielawn/personal-finance/pkg/loans"
	"github.com/dielawn/personal-finance/pkg/payperiod"
	"github.com/dielawn/personal-finance/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override keys present in a
// profile file, e.g. PERSONAL_FINANCE_OUTPUT_FORMAT for output.format.
const EnvPrefix = "PERSONAL_FINANCE"

// Profile holds every answer of the household questionnaire.
type Profile struct {
	Logging              LoggingConfig  `mapstructure:"logging" json:"logging"`
	Output               OutputConfig   `mapstructure:"output" json:"output"`
	Pay                  Pay            `mapstructure:"pay" json:"pay"`
	PostTaxContributions []Contribution `mapstructure:"postTaxContributions" json:"postTaxContributions"`
	Debts                []DebtEntry    `mapstructure:"debts" json:"debts"`
	Housing              Housing        `mapstructure:"housing" json:"housing"`
	Vehicles             []Vehicle      `mapstructure:"vehicles" json:"vehicles"`
	Expenses             ExpenseEntries `mapstructure:"expenses" json:"expenses"`
	Accounts             []Account      `mapstructure:"accounts" json:"accounts"`
	Projection           Projection     `mapstructure:"projection" json:"projection"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty" json:"level,omitempty"`                // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty"`             // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty"` // pretty, json
}

// Pay describes one paycheck. Payroll deductions are amounts per paycheck.
type Pay struct {
	GrossPay       float64 `mapstructure:"grossPay" json:"grossPay"`
	NetPay         float64 `mapstructure:"netPay" json:"netPay"`
	PayFrequency   string  `mapstructure:"payFrequency" json:"payFrequency"`
	Retirement401k float64 `mapstructure:"retirement401k" json:"retirement401k"`
	HSA            float64 `mapstructure:"hsa" json:"hsa"`
	Match401k      float64 `mapstructure:"match401k" json:"match401k"`
}

// Contribution is a post-tax amount saved from each paycheck.
type Contribution struct {
	Category string  `mapstructure:"category" json:"category"`
	Amount   float64 `mapstructure:"amount" json:"amount"`
}

// DebtEntry is a debt entered directly.
type DebtEntry struct {
	Name           string  `mapstructure:"name" json:"name"`
	Balance        float64 `mapstructure:"balance" json:"balance"`
	MinimumPayment float64 `mapstructure:"minimumPayment" json:"minimumPayment"`
	InterestRate   float64 `mapstructure:"interestRate" json:"interestRate"`
	Type           string  `mapstructure:"type" json:"type"`
}

// Housing holds the mortgage and other monthly housing costs.
type Housing struct {
	MortgageBalance      float64 `mapstructure:"mortgageBalance" json:"mortgageBalance"`
	InterestRate         float64 `mapstructure:"interestRate" json:"interestRate"`
	MonthlyPayment       float64 `mapstructure:"monthlyPayment" json:"monthlyPayment"`
	TermMonths           int     `mapstructure:"termMonths" json:"termMonths"`
	OtherMonthlyExpenses float64 `mapstructure:"otherMonthlyExpenses" json:"otherMonthlyExpenses"`
}

// Vehicle holds a vehicle loan and its monthly running costs.
type Vehicle struct {
	Name         string  `mapstructure:"name" json:"name"`
	LoanBalance  float64 `mapstructure:"loanBalance" json:"loanBalance"`
	InterestRate float64 `mapstructure:"interestRate" json:"interestRate"`
	Payment      float64 `mapstructure:"payment" json:"payment"`
	TermMonths   int     `mapstructure:"termMonths" json:"termMonths"`
	Fuel         float64 `mapstructure:"fuel" json:"fuel"`
	Insurance    float64 `mapstructure:"insurance" json:"insurance"`
	Maintenance  float64 `mapstructure:"maintenance" json:"maintenance"`
}

// ExpenseEntries are monthly living expenses.
type ExpenseEntries struct {
	Recurring     float64 `mapstructure:"recurring" json:"recurring"`
	Groceries     float64 `mapstructure:"groceries" json:"groceries"`
	Clothing      float64 `mapstructure:"clothing" json:"clothing"`
	DiningOut     float64 `mapstructure:"diningOut" json:"diningOut"`
	Entertainment float64 `mapstructure:"entertainment" json:"entertainment"`
}

// Account is a balance record. A nil growth rate or horizon means the
// projection defaults apply.
type Account struct {
	Name         string   `mapstructure:"name" json:"name"`
	Category     string   `mapstructure:"category" json:"category"`
	Balance      float64  `mapstructure:"balance" json:"balance"`
	GrowthRate   *float64 `mapstructure:"growthRate" json:"growthRate,omitempty"`
	HorizonYears *int     `mapstructure:"horizonYears" json:"horizonYears,omitempty"`
}

// Projection holds projection options.
type Projection struct {
	Years int `mapstructure:"years" json:"years"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// profile there.
func LoadConfiguration(configPath string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a profile from r. configType is any
// format viper understands, typically "yaml" or "json". Each call uses its
// own viper instance so concurrent loads do not share state.
func LoadConfigurationFromReader(r io.Reader, configType string) (*Profile, error) {
	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Profile, error) {
	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &profile, nil
}

// ValidateConfiguration reports every value that the engine will coerce or
// cannot use. The profile itself is never modified and the warnings never
// stop a report from being produced.
func (p *Profile) ValidateConfiguration() []string {
	var c validation.Collector

	if p.Pay.PayFrequency == "" {
		c.Add("pay.payFrequency is not set - pay figures unavailable")
	} else if _, err := payperiod.ParseFrequency(p.Pay.PayFrequency); err != nil {
		c.Addf("pay.payFrequency: %v - pay figures unavailable", err)
	}
	c.Add(validation.ValidateNonNegative("pay.grossPay", p.Pay.GrossPay))
	c.Add(validation.ValidateNonNegative("pay.netPay", p.Pay.NetPay))
	c.Add(validation.ValidateNonNegative("pay.retirement401k", p.Pay.Retirement401k))
	c.Add(validation.ValidateNonNegative("pay.hsa", p.Pay.HSA))
	c.Add(validation.ValidateNonNegative("pay.match401k", p.Pay.Match401k))
	if p.Pay.NetPay > p.Pay.GrossPay && p.Pay.GrossPay > 0 {
		c.Addf("pay.netPay (%.2f) exceeds pay.grossPay (%.2f)", p.Pay.NetPay, p.Pay.GrossPay)
	}

	for i, contribution := range p.PostTaxContributions {
		c.Add(validation.ValidateNonNegative(fmt.Sprintf("postTaxContributions[%d].amount", i), contribution.Amount))
	}

	for i, debt := range p.Debts {
		field := fmt.Sprintf("debts[%d]", i)
		c.Add(validation.ValidateNonNegative(field+".balance", debt.Balance))
		c.Add(validation.ValidateNonNegative(field+".minimumPayment", debt.MinimumPayment))
		c.Add(validation.ValidateNonNegative(field+".interestRate", debt.InterestRate))
		if debt.Type != "" && loans.ParseDebtType(debt.Type) == loans.DebtTypeOther && debt.Type != string(loans.DebtTypeOther) {
			c.Addf("%s.type %q is not recognised - treated as other", field, debt.Type)
		}
	}

	c.Add(validation.ValidateNonNegative("housing.mortgageBalance", p.Housing.MortgageBalance))
	c.Add(validation.ValidateNonNegative("housing.interestRate", p.Housing.InterestRate))
	c.Add(validation.ValidateNonNegative("housing.monthlyPayment", p.Housing.MonthlyPayment))
	c.Add(validation.ValidateNonNegative("housing.otherMonthlyExpenses", p.Housing.OtherMonthlyExpenses))

	for i, vehicle := range p.Vehicles {
		field := fmt.Sprintf("vehicles[%d]", i)
		c.Add(validation.ValidateNonNegative(field+".loanBalance", vehicle.LoanBalance))
		c.Add(validation.ValidateNonNegative(field+".interestRate", vehicle.InterestRate))
		c.Add(validation.ValidateNonNegative(field+".payment", vehicle.Payment))
		c.Add(validation.ValidateNonNegative(field+".fuel", vehicle.Fuel))
		c.Add(validation.ValidateNonNegative(field+".insurance", vehicle.Insurance))
		c.Add(validation.ValidateNonNegative(field+".maintenance", vehicle.Maintenance))
	}

	c.Add(validation.ValidateNonNegative("expenses.recurring", p.Expenses.Recurring))
	c.Add(validation.ValidateNonNegative("expenses.groceries", p.Expenses.Groceries))
	c.Add(validation.ValidateNonNegative("expenses.clothing", p.Expenses.Clothing))
	c.Add(validation.ValidateNonNegative("expenses.diningOut", p.Expenses.DiningOut))
	c.Add(validation.ValidateNonNegative("expenses.entertainment", p.Expenses.Entertainment))

	for _, debt := range p.AllDebts() {
		c.Add(validation.ValidatePayoff(debt.Name, debt.Balance, debt.MinimumPayment, debt.AnnualInterestRate))
	}

	for i, account := range p.Accounts {
		field := fmt.Sprintf("accounts[%d]", i)
		if _, ok := finance.ParseAccountCategory(account.Category); !ok {
			c.Addf("%s.category %q is not recognised - treated as generic", field, account.Category)
		}
		c.Add(validation.ValidateNonNegative(field+".balance", account.Balance))
		if account.GrowthRate != nil {
			c.Add(validation.ValidateNonNegative(field+".growthRate", *account.GrowthRate))
		}
		if account.HorizonYears != nil {
			c.Add(validation.ValidateProjectionYears(field+".horizonYears", *account.HorizonYears))
		}
	}
	c.Add(validation.ValidateProjectionYears("projection.years", p.Projection.Years))

	return c.Warnings()
}
