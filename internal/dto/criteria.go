package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func setText(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}

func setInt(v url.Values, key string, value *int) {
	if value != nil {
		v.Set(key, strconv.Itoa(*value))
	}
}

func setDecimal(v url.Values, key string, value *decimal.Decimal) {
	if value != nil {
		v.Set(key, value.String())
	}
}

// orderedDates меняет местами from/to, введённые в обратном порядке. Обе даты в DateLayout,
// поэтому лексический порядок совпадает с хронологическим.
func orderedDates(from, to string) (string, string) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from != "" && to != "" && from > to {
		return to, from
	}
	return from, to
}

func orderedInts(lo, hi *int) (*int, *int) {
	if lo != nil && hi != nil && *lo > *hi {
		return hi, lo
	}
	return lo, hi
}

func orderedDecimals(lo, hi *decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
	if lo != nil && hi != nil && lo.GreaterThan(*hi) {
		return hi, lo
	}
	return lo, hi
}
