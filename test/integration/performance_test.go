package integration

import (
	"testing"
	"time"

	"github.com/dielawn/personal-finance/internal/config"
	"github.com/dielawn/personal-finance/internal/report"
	"github.com/dielawn/personal-finance/pkg/finance"
	"github.com/dielawn/personal-finance/pkg/loans"
	"go.uber.org/zap"
)

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	conf, err := config.LoadConfiguration(testProfile)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	logger := zap.NewNop()
	const runs = 200
	start := time.Now()
	for i := 0; i < runs; i++ {
		_ = report.GetReport(logger, *conf, report.DefaultOptions())
	}
	elapsed := time.Since(start)

	t.Logf("Computed %d reports in %v (%v per report)", runs, elapsed, elapsed/runs)
	if elapsed > 5*time.Second {
		t.Errorf("report computation too slow: %v for %d runs", elapsed, runs)
	}
}

func BenchmarkGetReport(b *testing.B) {
	conf, err := config.LoadConfiguration(testProfile)
	if err != nil {
		b.Fatalf("LoadConfiguration failed: %v", err)
	}
	logger := zap.NewNop()
	opts := report.DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = report.GetReport(logger, *conf, opts)
	}
}

func BenchmarkScheduleNonConvergent(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = loans.Schedule(10000, 40, 6)
	}
}

func BenchmarkProject(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = finance.Project(42000, 5850, 7, 100)
	}
}
