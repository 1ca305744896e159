package output

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatValue rounds v to places decimals for display.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatValue(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// formatFloat is the lossless form used by machine-readable outputs.
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func formatEntryAge(e *int) string {
	if e == nil {
		return "-"
	}
	return strconv.Itoa(*e)
}

func intToString(i int) string { return strconv.Itoa(i) }
