package pricing

import (
	"math"
	"strings"
	"time"
)

const (
	currencySymbol = "R$"
	// Intl pt-BR separates the symbol from the amount with a no-break space.
	currencySpace = "\u00a0"
	dateLayout    = "02/01/06"
)

// brasilia is fixed at UTC-3; Brazil dropped daylight saving time in 2019.
var brasilia = time.FixedZone("BRT", -3*60*60)

// FormatCurrency renders an amount as Brazilian reais, e.g. "R$ 1.234,56".
// The sign follows the input, so -0.001 renders as "-R$ 0,00".
func FormatCurrency(amount float64) string {
	negative := !math.IsNaN(amount) && math.Signbit(amount)
	fixed := strings.TrimPrefix(dec(amount).StringFixed(2), "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString(currencySymbol)
	b.WriteString(currencySpace)
	b.WriteString(groupThousands(intPart))
	b.WriteString(",")
	b.WriteString(fracPart)
	return b.String()
}

// FormatDate renders an ISO timestamp as dd/mm/yy in Brasília time.
// Input that cannot be parsed renders as an empty string.
func FormatDate(iso string) string {
	t, ok := parseTimestamp(strings.TrimSpace(iso))
	if !ok {
		return ""
	}
	return t.In(brasilia).Format(dateLayout)
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	// Date-only strings are UTC midnight, like Date.parse does.
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
