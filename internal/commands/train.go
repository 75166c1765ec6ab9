package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/config"
	"github.com/budgetwise-dev/budgetwise/internal/ledger"
	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/seqmodel"
	"github.com/budgetwise-dev/budgetwise/internal/series"
)

func newTrainCommand() *cobra.Command {
	var dir string
	var epochs int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the spending sequence model from the ledger",
		Long: `Train fits the sequence model on the ledger's daily expense series
and writes the model and scaler artifacts into the project's models/
directory. The forecast command picks them up automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runTrain(cmd, absDir, epochs)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().IntVar(&epochs, "epochs", 0, "training epochs (default from config)")

	return cmd
}

func runTrain(cmd *cobra.Command, dir string, epochs int) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	txns, err := ledger.NewService(dir).ReadAll()
	if err != nil {
		return fmt.Errorf("reading ledger: %w", err)
	}
	expenses := series.FilterByType(txns, model.TypeExpense)

	points, err := series.Build(expenses)
	if err != nil {
		if errors.Is(err, series.ErrEmptyInput) {
			return fmt.Errorf("ledger has no expense transactions to train on")
		}
		return err
	}

	trainCfg := seqmodel.TrainConfig{
		HiddenSize:   cfg.Training.HiddenSize,
		Epochs:       cfg.Training.Epochs,
		LearningRate: cfg.Training.LearningRate,
		Patience:     cfg.Training.Patience,
	}
	if epochs > 0 {
		trainCfg.Epochs = epochs
	}

	m, sc, report, err := seqmodel.Train(series.Amounts(points), trainCfg)
	if err != nil {
		if errors.Is(err, seqmodel.ErrInsufficientData) {
			return fmt.Errorf("need at least %d days of history to train, have %d",
				seqmodel.MinTrainingDays, len(points))
		}
		return err
	}

	modelPath := filepath.Join(dir, cfg.Forecast.ModelPath)
	scalerPath := filepath.Join(dir, cfg.Forecast.ScalerPath)
	if err := seqmodel.SaveArtifacts(modelPath, scalerPath, m, sc); err != nil {
		return fmt.Errorf("saving artifacts: %w", err)
	}

	cmd.Printf("Trained on %d days (%d windows), %d epochs\n", report.Days, report.Windows, report.EpochsRun)
	cmd.Printf("  Train loss: %.6f  Val loss: %.6f\n", report.TrainLoss, report.ValLoss)
	cmd.Printf("  Next-day estimate: %s%.2f\n", cfg.Currency.Symbol, report.NextDayValue)
	cmd.Printf("  Artifacts: %s, %s\n", cfg.Forecast.ModelPath, cfg.Forecast.ScalerPath)
	return nil
}
