// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dielawn/personal-finance/pkg/finance"
	"github.com/dielawn/personal-finance/pkg/loans"
)

// FindDebt finds a debt schedule by name in the schedules slice.
// Returns a pointer to the schedule if found, nil otherwise.
func FindDebt(schedules []loans.DebtSchedule, name string) *loans.DebtSchedule {
	for i := range schedules {
		if schedules[i].Debt.Name == name {
			return &schedules[i]
		}
	}
	return nil
}

// FindAccount finds an account projection by account name.
// Returns a pointer to the projection if found, nil otherwise.
func FindAccount(projection finance.MultiProjection, name string) *finance.AccountProjection {
	for i := range projection.Accounts {
		if projection.Accounts[i].Account.Name == name {
			return &projection.Accounts[i]
		}
	}
	return nil
}

// WriteProfile writes content to a profile.yaml in a fresh temp directory and
// returns its path.
func WriteProfile(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}
	return path
}
