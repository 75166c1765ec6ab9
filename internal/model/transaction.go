package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType classifies the direction of a transaction. Amounts are always
// positive; direction is carried here, never in the sign.
type TxnType string

const (
	TypeExpense TxnType = "expense"
	TypeIncome  TxnType = "income"
)

// MaxDescriptionLen bounds the stored description text.
const MaxDescriptionLen = 200

// Transaction is a canonical transaction record, normalized from an
// arbitrary bank CSV layout. Instances are immutable once created.
type Transaction struct {
	ID          string
	Date        time.Time // calendar date, no time component
	Description string
	Amount      decimal.Decimal // strictly positive
	Category    Category
	Type        TxnType
}

// Day returns the transaction date truncated to midnight UTC.
func (t Transaction) Day() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)
}
