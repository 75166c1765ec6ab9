package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/config"
	"github.com/budgetwise-dev/budgetwise/internal/forecast"
	"github.com/budgetwise-dev/budgetwise/internal/ledger"
	"github.com/budgetwise-dev/budgetwise/internal/logging"
	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/series"
)

func newForecastCommand() *cobra.Command {
	var dir string
	var days int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Predict daily spending for the coming days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runForecast(cmd, absDir, days, asJSON)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().IntVar(&days, "days", 0, "forecast horizon in days (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the forecast as JSON")

	return cmd
}

func runForecast(cmd *cobra.Command, dir string, days int, asJSON bool) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Logging.Level)

	if days <= 0 {
		days = cfg.Forecast.HorizonDays
	}

	txns, err := ledger.NewService(dir).ReadAll()
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}
	expenses := series.FilterByType(txns, model.TypeExpense)

	engine := forecast.NewEngine(
		forecast.WithArtifacts(
			filepath.Join(dir, cfg.Forecast.ModelPath),
			filepath.Join(dir, cfg.Forecast.ScalerPath),
		),
		forecast.WithLogger(log),
	)

	result, err := engine.Forecast(expenses, days)
	if err != nil {
		return fmt.Errorf("forecasting: %w", err)
	}

	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding forecast: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	sym := cfg.Currency.Symbol
	cmd.Printf("Forecast for the next %d days (%s, confidence %.0f%% %s)\n",
		len(result.Predictions), result.Method, result.Confidence, result.ConfidenceLevel)
	cmd.Printf("  Daily average:   %s%.2f\n", sym, result.DailyAverage)
	cmd.Printf("  Total predicted: %s%.2f\n", sym, result.TotalPredicted)
	return nil
}
