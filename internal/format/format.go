package format

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// PrettyPrice formats a USD price with precision that grows as the price shrinks.
// Prices above 10000 drop the fraction entirely.
func PrettyPrice(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "-"
	}

	var places int32
	switch {
	case p < 0.00001:
		places = 6
	case p < 0.0001:
		places = 5
	case p < 0.001:
		places = 4
	case p < 0.01:
		places = 3
	case p > 10000:
		places = 0
	default:
		places = 2
	}
	return decimal.NewFromFloat(p).StringFixed(places)
}

// Percent formats a percentage change with two decimals, e.g. "-1.25%".
func Percent(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// Commas groups the digits of n by thousands.
func Commas(n uint64) string {
	if n > math.MaxInt64 {
		return humanize.Comma(int64(n / 1000)) + fmt.Sprintf(",%03d", n%1000)
	}
	return humanize.Comma(int64(n))
}

// Gwei converts a wei amount to whole gwei, e.g. "31 GWei".
func Gwei(wei uint64) string {
	return fmt.Sprintf("%.0f GWei", float64(wei)/1e9)
}

// Elapsed renders the time since t in its largest whole unit: "45s", "3m", "2h", "5d".
func Elapsed(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	}
}

// Symbol truncates a ticker to width runes, marking the cut with "…".
func Symbol(s string, width int) string {
	r := []rune(s)
	if len(r) <= width || width < 1 {
		return s
	}
	return string(r[:width-1]) + "…"
}
