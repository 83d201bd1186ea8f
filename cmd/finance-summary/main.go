package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dielawn/personal-finance/internal/config"
	"github.com/dielawn/personal-finance/internal/report"
	"github.com/dielawn/personal-finance/internal/server"
	"github.com/dielawn/personal-finance/pkg/constants"
	"github.com/dielawn/personal-finance/pkg/finance"
	"github.com/dielawn/personal-finance/pkg/loans"
	"github.com/dielawn/personal-finance/pkg/output"
	"github.com/dielawn/personal-finance/pkg/payperiod"
	"github.com/dielawn/personal-finance/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "finance-summary",
		Short: "Personal finance projection and amortization engine",
		Long: "Summarizes a household profile: pay in every period, debt payoff schedules, " +
			"savings growth and aggregate ratios.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		summaryCmd(),
		serveCmd(),
		amortizeCmd(),
		projectCmd(),
		normalizeCmd(),
		versionCmd(),
	)
	return root
}

func summaryCmd() *cobra.Command {
	var configLocation, outputFormatFlag, logLevel string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the report for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			logger, err := initializeLogger(conf.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// CLI override takes precedence over config
			outputFormat := conf.Output.Format
			if outputFormatFlag != "" {
				outputFormat = outputFormatFlag
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}

			result := report.GetReport(logger, *conf, report.DefaultOptions())
			for _, warning := range result.Warnings {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.summary"),
				)
			}

			return writeReport(cmd.OutOrStdout(), outputFormat, result)
		},
	}

	cmd.Flags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to profile file")
	cmd.Flags().StringVar(&outputFormatFlag, "output-format", "", "type of output override: pretty, json")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func writeReport(w io.Writer, outputFormat string, result report.Report) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, result)
	default:
		return output.PrettyFormat(w, result)
	}
}

func serveCmd() *cobra.Command {
	var serverConfig, logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(serverConfig)
			if err != nil {
				return err
			}

			logger, err := initializeLogger(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx, logger, cfg, version)
		},
	}

	cmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func amortizeCmd() *cobra.Command {
	var balance, payment, rate float64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Print the yearly amortization schedule of one loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule := loans.Schedule(balance, payment, rate)
			if jsonOutput {
				return output.JSON(cmd.OutOrStdout(), schedule)
			}
			return output.PrettyAmortization(cmd.OutOrStdout(), schedule)
		},
	}

	cmd.Flags().Float64Var(&balance, "balance", 0, "outstanding balance")
	cmd.Flags().Float64Var(&payment, "payment", 0, "fixed monthly payment")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "write JSON instead of a table")
	return cmd
}

func projectCmd() *cobra.Command {
	var initial, contribution, rate float64
	var years int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the compound growth of one balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			series := finance.Project(initial, contribution, rate, years)
			if jsonOutput {
				return output.JSON(cmd.OutOrStdout(), series)
			}
			return output.PrettyProjection(cmd.OutOrStdout(), rate, series)
		},
	}

	cmd.Flags().Float64Var(&initial, "initial", 0, "starting balance")
	cmd.Flags().Float64Var(&contribution, "contribution", 0, "contribution added after each year")
	cmd.Flags().Float64Var(&rate, "rate", constants.DefaultGrowthRatePercent, "annual growth rate in percent")
	cmd.Flags().IntVar(&years, "years", constants.DefaultHorizonYears, "number of years to project")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "write JSON instead of a table")
	return cmd
}

func normalizeCmd() *cobra.Command {
	var amount float64
	var frequency string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Convert an amount into weekly, bi-weekly, monthly and annual figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eq, err := payperiod.NormalizeTag(amount, frequency)
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(cmd.OutOrStdout(), eq)
			}
			return output.PrettyEquivalents(cmd.OutOrStdout(), fmt.Sprintf("%.2f %s", amount, frequency), eq)
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "amount per period")
	cmd.Flags().StringVar(&frequency, "frequency", string(payperiod.Monthly), "period of the amount: weekly, bi-weekly, monthly")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "write JSON instead of a table")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finance-summary %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}
