package calculator

import "github.com/shopspring/decimal"

// Format renders d keeping the trailing zeros implied by its exponent, so
// 1.5 + 1.5 prints as "3.0" rather than "3".
func Format(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
