package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dielawn/personal-finance/internal/config"
	"github.com/dielawn/personal-finance/internal/report"
	"github.com/dielawn/personal-finance/pkg/payperiod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var testProfile = filepath.Join("..", "..", "test", "testdata", "profile.yaml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    config.LoggingConfig
		override  string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{name: "Defaults", wantLevel: zapcore.InfoLevel},
		{name: "Config level", config: config.LoggingConfig{Level: "debug"}, wantLevel: zapcore.DebugLevel},
		{name: "Override wins", config: config.LoggingConfig{Level: "debug"}, override: "error", wantLevel: zapcore.ErrorLevel},
		{name: "Warning alias", config: config.LoggingConfig{Level: "warning", Format: "console"}, wantLevel: zapcore.WarnLevel},
		{name: "Invalid level", config: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "Invalid format", config: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "finance.log")
	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestSummaryCommandJSON(t *testing.T) {
	out, err := execute(t, "summary", "--config", testProfile, "--output-format", "json", "--log-level", "error")
	require.NoError(t, err)

	var result report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Pay)
	assert.Equal(t, payperiod.BiWeekly, result.Pay.Frequency)
	assert.Len(t, result.Debts, 3)
	assert.Len(t, result.Projection.Accounts, 2)
}

func TestSummaryCommandPretty(t *testing.T) {
	out, err := execute(t, "summary", "--config", testProfile, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "--- Pay (bi-weekly) ---")
	assert.Contains(t, out, "--- Summary ---")
}

func TestSummaryCommandErrors(t *testing.T) {
	_, err := execute(t, "summary", "--config", testProfile, "--output-format", "csv", "--log-level", "error")
	assert.Error(t, err)

	_, err = execute(t, "summary", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAmortizeCommand(t *testing.T) {
	out, err := execute(t, "amortize", "--balance", "12000", "--payment", "1000", "--rate", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "12.0 months")

	out, err = execute(t, "amortize", "--balance", "10000", "--payment", "40", "--rate", "6", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"monthsToPayoff": null`)
}

func TestProjectCommand(t *testing.T) {
	out, err := execute(t, "project", "--initial", "1000", "--contribution", "100", "--rate", "0", "--years", "2", "--json")
	require.NoError(t, err)

	var series []struct {
		Year    int     `json:"year"`
		Balance float64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &series))
	require.Len(t, series, 3)
	assert.Equal(t, 1200.0, series[2].Balance)
}

func TestNormalizeCommand(t *testing.T) {
	out, err := execute(t, "normalize", "--amount", "1000", "--frequency", "monthly", "--json")
	require.NoError(t, err)

	var eq payperiod.Equivalents
	require.NoError(t, json.Unmarshal([]byte(out), &eq))
	assert.Equal(t, 12000.0, eq.Annual)

	_, err = execute(t, "normalize", "--amount", "1000", "--frequency", "daily")
	assert.ErrorIs(t, err, payperiod.ErrUnknownFrequency)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "finance-summary dev\n", out)
}
