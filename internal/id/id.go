package id

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

// NewTransactionID returns a fresh transaction ID.
func NewTransactionID() string {
	return "txn_" + uuid.NewString()
}

// NewRunID returns a fresh import-run ID.
func NewRunID() string {
	return "run_" + uuid.NewString()
}

// DedupKey builds the duplicate-detection key for a transaction. Two
// rows with the same calendar date, amount, and description are the
// same transaction regardless of which export they came from.
func DedupKey(date time.Time, amount decimal.Decimal, description string) string {
	return fmt.Sprintf("%s|%s|%s", date.Format(dateFormat), amount.StringFixed(2), description)
}
