package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"CycleSentinel/internal/collector"
	"CycleSentinel/internal/config"
	"CycleSentinel/internal/logging"
	"CycleSentinel/internal/report"
	"CycleSentinel/internal/strategy"
	"CycleSentinel/internal/tracing"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath   string
		outPath   string
		providers []string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:          "report",
		Short:        "Run one analysis and write the HTML report",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if len(providers) > 0 {
				cfg.DataSource.Providers = providers
			}
			if outPath != "" {
				cfg.Report.OutputPath = outPath
			}
			if err := cfg.ValidateData(); err != nil {
				return err
			}

			logger := logging.Discard()
			if !quiet {
				logger = logging.New(cfg.Log.Level, cfg.Log.Format)
				logger.SetOutput(cmd.ErrOrStderr())
			}

			ctx := cmd.Context()
			tp, tracer, err := tracing.InitTracer(ctx, cfg.Tracing.Enabled)
			if err != nil {
				return err
			}
			defer tp.Shutdown(context.Background())

			fetcher, closeCache, err := collector.NewFromConfig(cfg, tracer, logging.Component(logger, "collector"))
			if err != nil {
				return err
			}
			defer closeCache()

			series, err := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Bars,
				logging.Component(logger, "collector")).Collect(ctx)
			if err != nil {
				return err
			}

			halvings, err := cfg.HalvingDates()
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			res, err := strategy.NewEngine(halvings).Analyze(series.Bars, now)
			if err != nil {
				return err
			}
			res.Symbol = series.Symbol

			if err := report.WriteFile(cfg.Report.OutputPath, res, now); err != nil {
				return err
			}
			if err := report.WriteSummary(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", cfg.Report.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "configs/config.yaml", "path to the YAML config file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "HTML output path (overrides report.output_path)")
	cmd.Flags().StringSliceVar(&providers, "providers", nil, "data providers in fallback order (binance, yahoo, mock)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress log output")
	return cmd
}
