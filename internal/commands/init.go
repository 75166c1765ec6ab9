package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/category"
	"github.com/budgetwise-dev/budgetwise/internal/config"
	"github.com/budgetwise-dev/budgetwise/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var noGit bool
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new BudgetWise project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, currency, noGit)
		},
	}

	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git repository setup")
	cmd.Flags().StringVar(&currency, "currency", "₹", "currency symbol for display")

	return cmd
}

func runInit(cmd *cobra.Command, dir, currency string, noGit bool) error {
	// Create directory structure.
	dirs := []string{
		"ledger",
		"models",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write budgetwise.yaml.
	cfg := config.Default()
	if currency != "" {
		cfg.Currency.Symbol = currency
	}
	if err := config.Save(dir, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the default categorization rules so users can edit them.
	classifier := category.NewClassifier()
	if err := classifier.Save(dir); err != nil {
		return fmt.Errorf("writing category rules: %w", err)
	}

	// Write .gitignore. Model artifacts and raw bank exports stay out
	// of version control; the ledger is what gets committed.
	gitignore := "import/\nmodels/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if noGit {
		cmd.Printf("Initialized BudgetWise project at %s\n", dir)
		return nil
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.CommitAll(dir, "init: new BudgetWise project", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	cmd.Printf("Initialized BudgetWise project at %s (%s)\n", dir, hash)
	return nil
}
