// Package series aggregates canonical transactions into contiguous
// daily spending series for the forecasting engine.
package series

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// ErrEmptyInput is returned when no transactions are supplied; a daily
// series needs at least one dated point.
var ErrEmptyInput = errors.New("no transactions to build daily series")

// Build groups transactions by calendar day and returns one point for
// every day in [min, max] inclusive, ascending, with gap days at zero.
// Expenses and income are summed together; callers wanting a spending
// series pre-filter by type.
func Build(txns []model.Transaction) ([]model.DailyPoint, error) {
	if len(txns) == 0 {
		return nil, ErrEmptyInput
	}

	totals := make(map[time.Time]decimal.Decimal, len(txns))
	min, max := txns[0].Day(), txns[0].Day()
	for _, txn := range txns {
		day := txn.Day()
		totals[day] = totals[day].Add(txn.Amount)
		if day.Before(min) {
			min = day
		}
		if day.After(max) {
			max = day
		}
	}

	var points []model.DailyPoint
	for day := min; !day.After(max); day = day.AddDate(0, 0, 1) {
		points = append(points, model.DailyPoint{Date: day, Total: totals[day]})
	}
	return points, nil
}

// FilterByType returns the transactions matching a transaction type.
func FilterByType(txns []model.Transaction, typ model.TxnType) []model.Transaction {
	var out []model.Transaction
	for _, txn := range txns {
		if txn.Type == typ {
			out = append(out, txn)
		}
	}
	return out
}

// Amounts extracts the daily totals as float64s for numeric work.
func Amounts(points []model.DailyPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Total.InexactFloat64()
	}
	return out
}
