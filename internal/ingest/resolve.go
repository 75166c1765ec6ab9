package ingest

import (
	"strings"
)

// SchemaError reports that a mandatory column could not be identified.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema error: " + e.Reason
}

// Columns holds the resolved column indexes of a table. A value of -1
// means unresolved: Description and Date have safe defaults during
// normalization, Amount is mandatory.
type Columns struct {
	Date        int
	Description int
	Amount      int
}

// Column-name synonyms seen across Indian bank and UPI exports.
var (
	dateSynonyms        = []string{"date", "transaction date", "trans date", "txn date", "value date"}
	descriptionSynonyms = []string{"description", "narration", "remarks", "particulars", "details"}
	amountSynonyms      = []string{"amount", "debit", "withdrawal", "txn amount", "transaction amount"}
)

// dateInferenceRatio is the share of rows that must parse as dates for
// a column to be inferred as the date column.
const dateInferenceRatio = 0.8

// ResolveColumns identifies the date, amount, and description columns
// of a table. Headers are matched against synonym lists first; if the
// amount or date column is still unknown, cell contents are inspected.
// Failing to locate an amount column is fatal.
func ResolveColumns(t Table) (Columns, error) {
	cols := Columns{Date: -1, Description: -1, Amount: -1}

	normalized := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		normalized[i] = normalizeHeader(h)
	}

	cols.Date = matchSynonym(normalized, dateSynonyms)
	cols.Description = matchSynonym(normalized, descriptionSynonyms)
	cols.Amount = matchSynonym(normalized, amountSynonyms)

	if cols.Date < 0 {
		cols.Date = inferDateColumn(t, cols)
	}
	if cols.Amount < 0 {
		cols.Amount = inferAmountColumn(t, cols)
	}

	if cols.Amount < 0 {
		return cols, &SchemaError{Reason: "could not identify amount column"}
	}
	return cols, nil
}

// normalizeHeader trims, lower-cases, and collapses inner whitespace.
func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

// matchSynonym returns the first header containing any synonym as a
// substring, or -1.
func matchSynonym(headers []string, synonyms []string) int {
	for i, h := range headers {
		for _, syn := range synonyms {
			if strings.Contains(h, syn) {
				return i
			}
		}
	}
	return -1
}

// inferDateColumn returns the first column whose cells are
// substantially parseable as dates.
func inferDateColumn(t Table, cols Columns) int {
	if len(t.Rows) == 0 {
		return -1
	}
	for i := range t.Headers {
		if i == cols.Amount || i == cols.Description {
			continue
		}
		parsed := 0
		for _, row := range t.Rows {
			if _, err := ParseDayFirstDate(cell(row, i)); err == nil {
				parsed++
			}
		}
		if float64(parsed) > float64(len(t.Rows))*dateInferenceRatio {
			return i
		}
	}
	return -1
}

// inferAmountColumn returns the first purely numeric column.
func inferAmountColumn(t Table, cols Columns) int {
	if len(t.Rows) == 0 {
		return -1
	}
	for i := range t.Headers {
		if i == cols.Date || i == cols.Description {
			continue
		}
		nonEmpty := 0
		numeric := true
		for _, row := range t.Rows {
			v := strings.TrimSpace(cell(row, i))
			if v == "" {
				continue
			}
			nonEmpty++
			if _, err := ParseAmount(v); err != nil {
				numeric = false
				break
			}
		}
		if numeric && nonEmpty > 0 {
			return i
		}
	}
	return -1
}
