package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/budgetwise-dev/budgetwise/internal/id"
	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// ledgerDir is the subdirectory holding transaction files.
const ledgerDir = "ledger"

// Service provides read/append access to the transaction store.
type Service struct {
	projectRoot string
}

// NewService creates a ledger Service rooted at a project directory.
func NewService(projectRoot string) *Service {
	return &Service{projectRoot: projectRoot}
}

// Append validates and appends transactions, partitioned per month.
// Files and directories are created as needed; new files get a header.
func (s *Service) Append(txns []model.Transaction) error {
	if verrs := ValidateTransactions(txns); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	// Partition by month, preserving order within each partition.
	type monthKey struct{ year, month int }
	byMonth := make(map[monthKey][]model.Transaction)
	var order []monthKey
	for _, txn := range txns {
		k := monthKey{txn.Date.Year(), int(txn.Date.Month())}
		if _, seen := byMonth[k]; !seen {
			order = append(order, k)
		}
		byMonth[k] = append(byMonth[k], txn)
	}

	for _, k := range order {
		if err := s.appendMonth(k.year, k.month, byMonth[k]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) appendMonth(year, month int, txns []model.Transaction) error {
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger file: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, txns); err != nil {
		return fmt.Errorf("appending transactions: %w", err)
	}
	return nil
}

// ReadMonth reads all transactions for a given year/month. A missing
// file reads as empty.
func (s *Service) ReadMonth(year, month int) ([]model.Transaction, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// ReadAll reads every stored transaction, ordered ascending by date
// (ties keep file order).
func (s *Service) ReadAll() ([]model.Transaction, error) {
	root := filepath.Join(s.projectRoot, ledgerDir)

	var all []model.Transaction
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || d.Name() != "transactions.csv" {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening ledger %s: %w", path, err)
		}
		defer f.Close()

		txns, err := ReadTransactions(f)
		if err != nil {
			return fmt.Errorf("reading ledger %s: %w", path, err)
		}
		all = append(all, txns...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(a, b int) bool {
		return all[a].Date.Before(all[b].Date)
	})
	return all, nil
}

// Keys returns the dedup keys of every stored transaction, for
// duplicate detection during import.
func (s *Service) Keys() (map[string]struct{}, error) {
	txns, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(txns))
	for _, txn := range txns {
		keys[id.DedupKey(txn.Date, txn.Amount, txn.Description)] = struct{}{}
	}
	return keys, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.projectRoot, ledgerDir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "transactions.csv")
}
