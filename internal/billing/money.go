package billing

import (
	"fmt"
	"strconv"
	"strings"
)

// currencySymbols maps ISO codes to display symbols. Unknown codes fall back
// to "CODE " prefix so nothing renders as a bare number.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "CA$",
	"AUD": "A$",
}

// Format converts an integer minor-unit amount into a display string, e.g.
// Format(123456, "USD") == "$1,234.56". Division by 100 happens here and
// nowhere else; everything upstream stays in integer cents.
func Format(amountCents int64, currency string) string {
	sign := ""
	if amountCents < 0 {
		sign = "-"
		amountCents = -amountCents
	}

	major := amountCents / 100
	minor := amountCents % 100

	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}

	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, groupThousands(major), minor)
}

// groupThousands inserts commas into a non-negative integer: 1234567 -> "1,234,567"
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ParseAmount converts a user-entered decimal amount ("1234.56", "1,234.56",
// "$12") into minor units. More than two decimal places is rejected rather
// than silently rounded.
func ParseAmount(s string) (int64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimLeft(cleaned, "$€£ ")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(cleaned, "-") {
		return 0, fmt.Errorf("negative amount not allowed: %s", s)
	}

	whole, frac, found := strings.Cut(cleaned, ".")
	if whole == "" {
		whole = "0"
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	var minor int64
	if found {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid fractional part in amount %q", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		minor, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
	}

	return major*100 + minor, nil
}
