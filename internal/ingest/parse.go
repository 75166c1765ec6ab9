package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Day-first layouts are tried before ISO ones: ambiguous numeric dates
// in Indian bank exports mean DD/MM, not MM/DD.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
	"02/01/06",
	"02-01-06",
	"2 Jan 2006",
	"02 Jan 2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// ParseDayFirstDate parses a cell as a calendar date, preferring
// day-first interpretations. A trailing time-of-day component is
// dropped. The result is midnight UTC.
func ParseDayFirstDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if d, ok := tryLayouts(s); ok {
		return d, nil
	}
	// "25/12/2024 14:30" style: retry with the date portion only.
	if fields := strings.Fields(s); len(fields) > 1 {
		if d, ok := tryLayouts(fields[0]); ok {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func tryLayouts(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		d, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

var amountCleaner = strings.NewReplacer(
	",", "",
	"₹", "",
	"Rs.", "",
	"Rs", "",
	"INR", "",
)

// ParseAmount parses a cell as a monetary amount, stripping thousands
// separators and currency markers and taking the absolute value. Sign
// never encodes direction in canonical records.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountCleaner.Replace(s))
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q: %w", s, err)
	}
	return d.Abs(), nil
}
