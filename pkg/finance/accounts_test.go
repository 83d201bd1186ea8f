package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountCategory(t *testing.T) {
	tests := []struct {
		tag      string
		expected AccountCategory
		ok       bool
	}{
		{"savings", CategorySavings, true},
		{"Checking", CategoryChecking, true},
		{"IRA", CategoryIRA, true},
		{"hsa", CategoryHSA, true},
		{"401k", CategoryRetirement401k, true},
		{"401(k)", CategoryRetirement401k, true},
		{"generic", CategoryGeneric, true},
		{"my roth ira", CategoryGeneric, false},
		{"", CategoryGeneric, false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := ParseAccountCategory(tt.tag)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestCategorySchemaIsCopied(t *testing.T) {
	entries := map[AccountCategory]CategoryInfo{CategoryIRA: {Label: "IRA", Source: ContributionIRA}}
	schema := NewCategorySchema(entries)
	entries[CategoryIRA] = CategoryInfo{Label: "changed"}

	info, ok := schema.Lookup(CategoryIRA)
	require.True(t, ok)
	assert.Equal(t, "IRA", info.Label)

	_, ok = CategorySchema{}.Lookup(CategoryIRA)
	assert.False(t, ok)
}

func TestContributionsFor(t *testing.T) {
	c := Contributions{Employee401k: 3900, EmployerMatch: 1950, HSA: 1300, IRA: 1300, Savings: 2600}

	assert.Equal(t, 5850.0, c.For(ContributionRetirement401k))
	assert.Equal(t, 1300.0, c.For(ContributionHSA))
	assert.Equal(t, 1300.0, c.For(ContributionIRA))
	assert.Equal(t, 2600.0, c.For(ContributionSavings))
	assert.Equal(t, 0.0, c.For(ContributionNone))
	assert.Equal(t, 0.0, Contributions{HSA: -5}.For(ContributionHSA))
}

func TestBuildSavingsAccounts(t *testing.T) {
	rate := 4.0
	horizon := 10
	records := []AccountRecord{
		{Name: "Work 401k", Category: CategoryRetirement401k, Balance: 42000},
		{Name: "Rainy day", Category: CategorySavings, Balance: 8000, GrowthRatePercent: &rate, HorizonYears: &horizon},
		{Name: "Second savings", Category: CategorySavings, Balance: 500},
		{Name: "Checking", Category: CategoryChecking, Balance: 1500},
		{Name: "Roth IRA at broker", Category: AccountCategory("brokerage"), Balance: -20},
		{Category: CategoryHSA, Balance: 900},
	}
	contributions := Contributions{Employee401k: 3900, EmployerMatch: 1950, HSA: 1300, Savings: 2600}

	accounts := BuildSavingsAccounts(records, contributions, DefaultCategorySchema(), DefaultAssumptions())
	require.Len(t, accounts, 6)

	assert.Equal(t, SavingsAccount{
		Name: "Work 401k", Category: CategoryRetirement401k, InitialBalance: 42000,
		AnnualContribution: 5850, GrowthRatePercent: 7, HorizonYears: 30,
	}, accounts[0])

	assert.Equal(t, 2600.0, accounts[1].AnnualContribution)
	assert.Equal(t, 4.0, accounts[1].GrowthRatePercent)
	assert.Equal(t, 10, accounts[1].HorizonYears)

	assert.Equal(t, 0.0, accounts[2].AnnualContribution, "savings contribution already assigned")
	assert.Equal(t, 0.0, accounts[3].AnnualContribution)

	assert.Equal(t, CategoryGeneric, accounts[4].Category, "unknown category is not inferred from the name")
	assert.Equal(t, 0.0, accounts[4].InitialBalance)
	assert.Equal(t, 0.0, accounts[4].AnnualContribution)

	assert.Equal(t, "HSA", accounts[5].Name)
	assert.Equal(t, 1300.0, accounts[5].AnnualContribution)
}
