package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// amountReplacer strips currency symbols, thousands separators and spaces.
var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "", "\t", "", "\u00a0", "")

// ParseAmount parses a bank amount such as "-$1,234.50" or "(42.00)". The
// sign is kept; accounting parentheses mean negative.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := amountReplacer.Replace(strings.TrimSpace(raw))

	negative := false
	if len(s) > 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.TrimPrefix(s, "+")
	if s == "" || strings.ContainsAny(s, "eE+") {
		return decimal.Zero, errInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errInvalidAmount
	}
	if negative {
		if d.IsNegative() {
			return decimal.Zero, errInvalidAmount
		}
		d = d.Neg()
	}
	return d, nil
}
