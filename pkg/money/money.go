// Package money holds the currency arithmetic shared by billing and reporting.
// Amounts are exact decimals kept at two places and rounded half-up.
package money

import "github.com/shopspring/decimal"

// Places is the number of decimal places kept for currency amounts.
const Places = 2

// Zero is the canonical empty amount.
var Zero = decimal.Zero

// Round rounds d half-up (away from zero) to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// LineTotal returns price × quantity rounded to cents. A negative price or a
// quantity below one contributes nothing instead of failing the caller.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	if quantity < 1 || price.IsNegative() {
		return Zero
	}
	return Round(price.Mul(decimal.NewFromInt(int64(quantity))))
}

// Sum adds the amounts and rounds the result to cents.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round(total)
}

// Format renders d with exactly two decimals, e.g. "42.50".
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Parse reads a decimal amount and rounds it to cents.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, err
	}
	return Round(d), nil
}
