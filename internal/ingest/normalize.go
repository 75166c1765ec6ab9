package ingest

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/budgetwise-dev/budgetwise/internal/category"
	"github.com/budgetwise-dev/budgetwise/internal/id"
	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// ErrNoValidData is returned when zero transactions survive row-level
// filtering.
var ErrNoValidData = errors.New("no valid transactions in input")

// incomeSignals reclassify a transaction as income when any appears in
// the description. Applied independently of category classification.
var incomeSignals = []string{"credit", "received", "refund", "cashback", "salary"}

// Options configures a Normalize call.
type Options struct {
	// Existing holds dedup keys of already-stored transactions. The
	// normalizer only reads it; callers own its lifecycle.
	Existing map[string]struct{}

	// Now is the processing date used when no date column resolved.
	// Zero means time.Now().
	Now time.Time

	// Classifier overrides the built-in category table.
	Classifier *category.Classifier

	Logger zerolog.Logger
}

// Report summarizes a normalization batch for caller-facing output.
type Report struct {
	Imported   int
	Duplicates int
	Invalid    int
}

// Normalize converts raw table rows into canonical transactions.
// Row-level failures (bad date, bad amount) are counted and skipped,
// never raised; the call fails only when nothing survives row-level
// parsing. A batch where every row is a duplicate succeeds with zero
// imports. Output is ordered ascending by date, ties keeping row order.
func Normalize(t Table, cols Columns, opts Options) ([]model.Transaction, Report, error) {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = category.NewClassifier()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	fallbackDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	log := opts.Logger

	if cols.Date < 0 {
		log.Warn().Msg("no date column resolved; defaulting rows to the processing date")
	}

	seen := make(map[string]struct{})
	var report Report
	var txns []model.Transaction

	for i, row := range t.Rows {
		date := fallbackDate
		if cols.Date >= 0 {
			parsed, err := ParseDayFirstDate(cell(row, cols.Date))
			if err != nil {
				report.Invalid++
				log.Debug().Int("row", i+2).Err(err).Msg("skipping row")
				continue
			}
			date = parsed
		}

		amount, err := ParseAmount(cell(row, cols.Amount))
		if err != nil || !amount.IsPositive() {
			report.Invalid++
			log.Debug().Int("row", i+2).Msg("skipping row with non-positive or unparseable amount")
			continue
		}

		desc := strings.TrimSpace(cell(row, cols.Description))
		if desc == "" {
			desc = "Transaction"
		}
		desc = truncate(desc, model.MaxDescriptionLen)

		key := id.DedupKey(date, amount, desc)
		if _, ok := opts.Existing[key]; ok {
			report.Duplicates++
			continue
		}
		if _, ok := seen[key]; ok {
			report.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		txns = append(txns, model.Transaction{
			ID:          id.NewTransactionID(),
			Date:        date,
			Description: desc,
			Amount:      amount,
			Category:    classifier.Classify(desc),
			Type:        inferType(desc),
		})
		report.Imported++
	}

	// Duplicates are not a failure: a batch where every row dedups is a
	// clean zero-imported success. Only a batch with nothing surviving
	// row-level parsing fails.
	if report.Imported == 0 && report.Duplicates == 0 {
		return nil, report, ErrNoValidData
	}

	sort.SliceStable(txns, func(a, b int) bool {
		return txns[a].Date.Before(txns[b].Date)
	})
	return txns, report, nil
}

// inferType defaults to expense and flips to income on any income
// signal keyword. Independent of category classification: a
// description may classify as an expense category and still type as
// income.
func inferType(description string) model.TxnType {
	desc := strings.ToLower(description)
	for _, signal := range incomeSignals {
		if strings.Contains(desc, signal) {
			return model.TypeIncome
		}
	}
	return model.TypeExpense
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
