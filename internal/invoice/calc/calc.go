// Package calc holds the pure invoice arithmetic: per-line amounts and
// invoice-level totals. Nothing here touches storage or transport; identical
// inputs always produce identical outputs.
package calc

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicegen/internal/money"
)

// DiscountType selects how a line discount is applied.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

var (
	ErrQuantityNotPositive = errors.New("invalid_quantity")
	ErrRateNegative        = errors.New("invalid_rate")
	ErrDiscountNegative    = errors.New("invalid_discount_value")
	ErrDiscountOutOfRange  = errors.New("invalid_discount_range")
	ErrUnknownDiscountType = errors.New("invalid_discount_type")
)

// ParseDiscountType validates an externally supplied discount type string.
func ParseDiscountType(value string) (DiscountType, error) {
	switch DiscountType(value) {
	case DiscountPercentage:
		return DiscountPercentage, nil
	case DiscountAmount:
		return DiscountAmount, nil
	default:
		return "", ErrUnknownDiscountType
	}
}

// Item carries the inputs of a single line amount computation.
type Item struct {
	Quantity      decimal.Decimal
	Rate          money.Money
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ItemAmount computes a line amount: quantity * rate with the discount
// applied, rounded half-up to currency precision.
//
// Percentage discounts outside [0,100] are rejected. Amount discounts are
// rejected only when negative; a discount larger than the base clamps the
// amount to zero rather than going negative. The asymmetry is deliberate and
// matches the invoice-entry behavior users expect.
func ItemAmount(item Item) (money.Money, error) {
	if !item.Quantity.IsPositive() {
		return money.Zero(), ErrQuantityNotPositive
	}
	if item.Rate.IsNegative() {
		return money.Zero(), ErrRateNegative
	}

	base := item.Rate.MulDecimal(item.Quantity)

	switch item.DiscountType {
	case DiscountPercentage:
		if item.DiscountValue.IsNegative() || item.DiscountValue.GreaterThan(oneHundred) {
			return money.Zero(), ErrDiscountOutOfRange
		}
		factor := decimal.NewFromInt(1).Sub(item.DiscountValue.Div(oneHundred))
		return base.MulDecimal(factor).Round(), nil
	case DiscountAmount:
		if item.DiscountValue.IsNegative() {
			return money.Zero(), ErrDiscountNegative
		}
		amount := base.Sub(money.FromDecimal(item.DiscountValue))
		if amount.IsNegative() {
			return money.Zero(), nil
		}
		return amount.Round(), nil
	default:
		return money.Zero(), ErrUnknownDiscountType
	}
}

// Totals is the aggregate of an invoice's line amounts.
type Totals struct {
	Subtotal  money.Money
	TaxAmount money.Money
	Total     money.Money
}

// ComputeTotals sums line amounts in sequence order and applies invoice-level
// tax and shipping. The aggregator trusts taxRate and shipping to be
// pre-validated non-negative; the input boundary rejects negatives.
//
// Tax is rounded to currency precision, and the grand total is rounded once
// at the end so rounding error never compounds per term. An empty item list
// is not an error: subtotal is zero and the total is just the shipping cost.
func ComputeTotals(items []Item, taxRate decimal.Decimal, shipping money.Money) (Totals, error) {
	subtotal := money.Zero()
	for _, item := range items {
		amount, err := ItemAmount(item)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(amount)
	}

	taxAmount := subtotal.Percent(taxRate).Round()
	total := subtotal.Add(taxAmount).Add(shipping).Round()

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     total,
	}, nil
}
