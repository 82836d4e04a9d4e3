package service

import (
	"errors"
	"fmt"

	"arco-factory-manager/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNoLines     = errors.New("sale has no lines")
	ErrMissingItem = errors.New("line has no item")
)

var hundred = decimal.NewFromInt(100)

// PricedLine is the storage-free view of a sale/estimate line the pricing
// engine works on.
type PricedLine struct {
	ItemID          uint
	Category        models.ItemCategory
	Qty             decimal.Decimal
	UnitPrice       decimal.Decimal
	Feet            decimal.Decimal
	DiscountPercent decimal.Decimal
}

// ResolveUnitPrice picks the rate-list override for rateList when the item
// carries one, otherwise the item's base sale price. An empty rateList always
// means base price.
func ResolveUnitPrice(item *models.Item, rateList string) decimal.Decimal {
	if item == nil {
		return decimal.Zero
	}
	if rateList != "" {
		for _, rp := range item.RatePrices {
			if rp.RateList == rateList {
				return rp.Price
			}
		}
	}
	return item.SalePrice
}

// LengthFactor is the entered feet value for Aluminium sections and 1 for
// every other category, whatever feet value was entered.
func LengthFactor(category models.ItemCategory, feet decimal.Decimal) decimal.Decimal {
	if category == models.CategoryAluminium {
		return feet
	}
	return decimal.NewFromInt(1)
}

// LineNet computes feet × price × qty less the line discount, rounded to
// 2 places. Lines that would fail validation contribute zero so a form in
// progress can still show a running total.
func LineNet(l PricedLine) decimal.Decimal {
	if l.ItemID == 0 || !l.Qty.IsPositive() || !l.UnitPrice.IsPositive() {
		return decimal.Zero
	}
	factor := LengthFactor(l.Category, l.Feet)
	if !factor.IsPositive() {
		return decimal.Zero
	}
	total := factor.Mul(l.UnitPrice).Mul(l.Qty)
	net := total.Mul(hundred.Sub(l.DiscountPercent)).Div(hundred)
	return net.Round(2)
}

// ComputeTotals returns the subtotal over all line nets and the grand total
// after the overall discount.
func ComputeTotals(lines []PricedLine, overallDiscount decimal.Decimal) (subtotal, grand decimal.Decimal) {
	subtotal = decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineNet(l))
	}
	grand = subtotal.Mul(hundred.Sub(overallDiscount)).Div(hundred).Round(2)
	return subtotal, grand
}

// ValidateLines is the save-time gate: silently-skipped lines are fine while
// editing, but a save with any invalid line is rejected outright.
func ValidateLines(lines []PricedLine) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	for i, l := range lines {
		if l.ItemID == 0 {
			return fmt.Errorf("line %d: %w", i+1, ErrMissingItem)
		}
		if !l.Qty.IsPositive() {
			return fmt.Errorf("line %d: quantity must be greater than zero", i+1)
		}
		if !l.UnitPrice.IsPositive() {
			return fmt.Errorf("line %d: price must be greater than zero", i+1)
		}
		if l.Category == models.CategoryAluminium && !l.Feet.IsPositive() {
			return fmt.Errorf("line %d: feet must be greater than zero for Aluminium", i+1)
		}
		if l.DiscountPercent.IsNegative() || l.DiscountPercent.GreaterThan(hundred) {
			return fmt.Errorf("line %d: discount must be between 0 and 100", i+1)
		}
	}
	return nil
}
