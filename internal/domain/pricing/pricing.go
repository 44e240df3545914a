// Package pricing derives product and bill amounts from their inputs.
package pricing

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places money values are rounded to.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// FinalPrice applies the percentage discount and then the tax rate to base.
// Inputs are expected to be validated by the caller.
func FinalPrice(base, discountPercent, taxRatePercent decimal.Decimal) decimal.Decimal {
	afterDiscount := base.Mul(decimal.NewFromInt(1).Sub(discountPercent.Div(hundred)))
	return afterDiscount.Mul(decimal.NewFromInt(1).Add(taxRatePercent.Div(hundred))).Round(MoneyPlaces)
}

// LineTotal is the unit price multiplied by quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyPlaces)
}

// Percent returns rate percent of amount, unrounded.
func Percent(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(hundred)
}

// Total is subtotal plus tax minus discount.
func Total(subtotal, tax, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Sub(discount).Round(MoneyPlaces)
}
