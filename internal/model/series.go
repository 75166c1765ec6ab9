package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyPoint is one day in a contiguous daily spending series. Days with
// no transactions carry a zero Total.
type DailyPoint struct {
	Date  time.Time
	Total decimal.Decimal
}
