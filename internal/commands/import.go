package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/category"
	"github.com/budgetwise-dev/budgetwise/internal/config"
	"github.com/budgetwise-dev/budgetwise/internal/gitops"
	"github.com/budgetwise-dev/budgetwise/internal/id"
	"github.com/budgetwise-dev/budgetwise/internal/importlog"
	"github.com/budgetwise-dev/budgetwise/internal/ingest"
	"github.com/budgetwise-dev/budgetwise/internal/ledger"
	"github.com/budgetwise-dev/budgetwise/internal/logging"
)

func newImportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank CSV exports into the ledger",
		Long: `Import parses bank CSV exports, normalizes them into canonical
transactions and appends them to the ledger. With no arguments it
processes every CSV in the project's import/ directory and archives
each processed file under import/processed/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runImport(cmd, absDir, args)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")

	return cmd
}

// importFile is one unit of work: an export to ingest, and whether it
// came from the drop-zone (and so should be archived afterwards).
type importFile struct {
	name    string
	path    string
	archive bool
}

func runImport(cmd *cobra.Command, dir string, args []string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Logging.Level)

	files, err := collectImportFiles(dir, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cmd.Println("Nothing to import.")
		return nil
	}

	classifier, err := category.LoadOrDefault(dir)
	if err != nil {
		return fmt.Errorf("loading category rules: %w", err)
	}

	svc := ledger.NewService(dir)

	var imported, failed int
	for _, f := range files {
		if err := importOne(cmd, dir, cfg, svc, classifier, f, log); err != nil {
			failed++
			log.Error().Str("file", f.name).Err(err).Msg("import failed")
			continue
		}
		imported++
	}

	if imported == 0 && failed > 0 {
		return fmt.Errorf("no files imported (%d failed)", failed)
	}
	return nil
}

// collectImportFiles resolves explicit file arguments, or scans the
// drop-zone when none are given.
func collectImportFiles(dir string, args []string) ([]importFile, error) {
	if len(args) == 0 {
		scanned, err := ingest.Scan(dir)
		if err != nil {
			return nil, err
		}
		files := make([]importFile, 0, len(scanned))
		for _, s := range scanned {
			files = append(files, importFile{name: s.Name, path: s.Path, archive: true})
		}
		return files, nil
	}

	files := make([]importFile, 0, len(args))
	for _, a := range args {
		files = append(files, importFile{name: filepath.Base(a), path: a})
	}
	return files, nil
}

func importOne(cmd *cobra.Command, dir string, cfg *config.Config, svc *ledger.Service, classifier *category.Classifier, f importFile, log zerolog.Logger) error {
	fh, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.name, err)
	}
	defer fh.Close()

	table, err := ingest.ReadTable(fh)
	if err != nil {
		return err
	}

	cols, err := ingest.ResolveColumns(table)
	if err != nil {
		return err
	}

	existing, err := svc.Keys()
	if err != nil {
		return fmt.Errorf("reading ledger keys: %w", err)
	}

	txns, report, err := ingest.Normalize(table, cols, ingest.Options{
		Existing:   existing,
		Classifier: classifier,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	if err := svc.Append(txns); err != nil {
		return fmt.Errorf("appending to ledger: %w", err)
	}

	var hash string
	if report.Imported > 0 && cfg.Git.AutoCommit && gitops.IsRepo(dir) {
		msg := fmt.Sprintf("import: %d transactions from %s", report.Imported, f.name)
		hash, err = gitops.CommitAll(dir, msg, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("committing import: %w", err)
		}
	}

	entry := importlog.Entry{
		Timestamp:  time.Now().UTC(),
		RunID:      id.NewRunID(),
		SourceFile: f.name,
		Encoding:   table.Encoding,
		Imported:   report.Imported,
		Duplicates: report.Duplicates,
		Invalid:    report.Invalid,
		CommitHash: hash,
	}
	if err := importlog.Append(dir, []importlog.Entry{entry}); err != nil {
		return fmt.Errorf("writing import log: %w", err)
	}

	if f.archive {
		if err := ingest.MarkProcessed(dir, f.name); err != nil {
			return fmt.Errorf("archiving %s: %w", f.name, err)
		}
	}

	cmd.Printf("%s: imported %d, duplicates %d, invalid %d (%s)\n",
		f.name, report.Imported, report.Duplicates, report.Invalid, table.Encoding)
	return nil
}
