package ledger

import (
	"fmt"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// ValidationError describes a single invariant violation on a
// transaction about to be stored.
type ValidationError struct {
	TxnID       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s]: %s", e.TxnID, e.Description)
}

// ValidateTransactions enforces the canonical-transaction invariants
// before anything reaches the store.
func ValidateTransactions(txns []model.Transaction) []ValidationError {
	var errs []ValidationError

	for _, txn := range txns {
		if txn.ID == "" {
			errs = append(errs, ValidationError{TxnID: txn.ID, Description: "missing transaction ID"})
		}
		if txn.Date.IsZero() {
			errs = append(errs, ValidationError{TxnID: txn.ID, Description: "missing date"})
		}
		if !txn.Amount.IsPositive() {
			errs = append(errs, ValidationError{
				TxnID:       txn.ID,
				Description: fmt.Sprintf("amount must be positive, got %s", txn.Amount),
			})
		}
		if !txn.Category.Valid() {
			errs = append(errs, ValidationError{
				TxnID:       txn.ID,
				Description: fmt.Sprintf("unknown category %q", txn.Category),
			})
		}
		if txn.Type != model.TypeExpense && txn.Type != model.TypeIncome {
			errs = append(errs, ValidationError{
				TxnID:       txn.ID,
				Description: fmt.Sprintf("unknown transaction type %q", txn.Type),
			})
		}
		if len([]rune(txn.Description)) > model.MaxDescriptionLen {
			errs = append(errs, ValidationError{
				TxnID:       txn.ID,
				Description: fmt.Sprintf("description longer than %d characters", model.MaxDescriptionLen),
			})
		}
	}
	return errs
}
