package finance

import (
	"strings"

	"github.com/dielawn/personal-finance/pkg/mathutil"
)

// AccountCategory classifies a balance record. It is assigned when the record
// is entered and never inferred from the account's display name.
type AccountCategory string

// Known account categories.
const (
	CategorySavings        AccountCategory = "savings"
	CategoryChecking       AccountCategory = "checking"
	CategoryIRA            AccountCategory = "ira"
	CategoryHSA            AccountCategory = "hsa"
	CategoryRetirement401k AccountCategory = "401k"
	CategoryGeneric        AccountCategory = "generic"
)

// ParseAccountCategory resolves an explicit category tag. Unknown or empty
// tags resolve to CategoryGeneric and ok is false.
func ParseAccountCategory(tag string) (category AccountCategory, ok bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "savings":
		return CategorySavings, true
	case "checking":
		return CategoryChecking, true
	case "ira":
		return CategoryIRA, true
	case "hsa":
		return CategoryHSA, true
	case "401k", "401(k)":
		return CategoryRetirement401k, true
	case "generic":
		return CategoryGeneric, true
	}
	return CategoryGeneric, false
}

// ContributionSource names the pay-derived contribution that funds an account.
type ContributionSource int

// Contribution sources.
const (
	ContributionNone ContributionSource = iota
	ContributionRetirement401k
	ContributionHSA
	ContributionIRA
	ContributionSavings
)

// CategoryInfo is the default metadata for one account category.
type CategoryInfo struct {
	Label  string
	PreTax bool
	Source ContributionSource
}

// CategorySchema maps categories to their metadata. It is built once and
// shared; the zero value behaves as an empty schema.
type CategorySchema struct {
	categories map[AccountCategory]CategoryInfo
}

// NewCategorySchema builds a schema from the given entries. The map is copied.
func NewCategorySchema(entries map[AccountCategory]CategoryInfo) CategorySchema {
	categories := make(map[AccountCategory]CategoryInfo, len(entries))
	for category, info := range entries {
		categories[category] = info
	}
	return CategorySchema{categories: categories}
}

// DefaultCategorySchema returns the schema for the built-in categories.
func DefaultCategorySchema() CategorySchema {
	return NewCategorySchema(map[AccountCategory]CategoryInfo{
		CategoryRetirement401k: {Label: "401(k)", PreTax: true, Source: ContributionRetirement401k},
		CategoryHSA:            {Label: "HSA", PreTax: true, Source: ContributionHSA},
		CategoryIRA:            {Label: "IRA", Source: ContributionIRA},
		CategorySavings:        {Label: "Savings Account", Source: ContributionSavings},
		CategoryChecking:       {Label: "Checking Account"},
		CategoryGeneric:        {Label: "Account"},
	})
}

// Lookup returns the metadata for category.
func (s CategorySchema) Lookup(category AccountCategory) (CategoryInfo, bool) {
	info, ok := s.categories[category]
	return info, ok
}

// AccountRecord is a raw balance record. Nil rate or horizon means the
// projection defaults apply.
type AccountRecord struct {
	Name              string
	Category          AccountCategory
	Balance           float64
	GrowthRatePercent *float64
	HorizonYears      *int
}

// Contributions are the annual amounts flowing into each contribution source.
type Contributions struct {
	Employee401k  float64
	EmployerMatch float64
	HSA           float64
	IRA           float64
	Savings       float64
}

// For returns the annual contribution for source. A 401(k) receives the
// employee contribution plus the employer match.
func (c Contributions) For(source ContributionSource) float64 {
	switch source {
	case ContributionRetirement401k:
		return mathutil.ClampNonNegative(c.Employee401k) + mathutil.ClampNonNegative(c.EmployerMatch)
	case ContributionHSA:
		return mathutil.ClampNonNegative(c.HSA)
	case ContributionIRA:
		return mathutil.ClampNonNegative(c.IRA)
	case ContributionSavings:
		return mathutil.ClampNonNegative(c.Savings)
	}
	return 0
}

// BuildSavingsAccounts resolves each record against schema once, attaching
// its annual contribution and filling a missing rate or horizon from
// defaults. Records whose category is not in the schema are treated as
// generic accounts with no contribution. Each contribution source funds only
// the first account that draws on it.
func BuildSavingsAccounts(records []AccountRecord, contributions Contributions, schema CategorySchema, defaults Defaults) []SavingsAccount {
	defaults = defaults.normalized()
	funded := make(map[ContributionSource]bool)
	accounts := make([]SavingsAccount, 0, len(records))
	for _, record := range records {
		category := record.Category
		info, ok := schema.Lookup(category)
		if !ok {
			category = CategoryGeneric
			info, _ = schema.Lookup(CategoryGeneric)
		}

		name := strings.TrimSpace(record.Name)
		if name == "" {
			name = info.Label
		}

		contribution := 0.0
		if info.Source != ContributionNone && !funded[info.Source] {
			contribution = contributions.For(info.Source)
			funded[info.Source] = true
		}

		account := SavingsAccount{
			Name:               name,
			Category:           category,
			InitialBalance:     mathutil.ClampNonNegative(record.Balance),
			AnnualContribution: contribution,
			GrowthRatePercent:  defaults.GrowthRatePercent,
			HorizonYears:       defaults.HorizonYears,
		}
		if record.GrowthRatePercent != nil {
			account.GrowthRatePercent = mathutil.ClampNonNegative(*record.GrowthRatePercent)
		}
		if record.HorizonYears != nil {
			account.HorizonYears = clampYears(*record.HorizonYears)
		}
		accounts = append(accounts, account)
	}
	return accounts
}
