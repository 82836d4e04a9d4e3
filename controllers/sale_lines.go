package controllers

import (
	"fmt"

	"arco-factory-manager/models"
	"arco-factory-manager/service"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LineInput struct {
	ItemID          uint            `json:"item_id" binding:"required"`
	Qty             decimal.Decimal `json:"qty" binding:"required"`
	Feet            decimal.Decimal `json:"feet"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	// manual price entry wins over rate-list resolution
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// buildLines resolves prices against rateList, snapshots item fields and
// prices every line. Validation is the save-time gate: any invalid line
// rejects the whole set.
func buildLines(tx *gorm.DB, rateList string, inputs []LineInput, overallDiscount decimal.Decimal) ([]models.SaleLine, decimal.Decimal, decimal.Decimal, error) {
	one := decimal.NewFromInt(1)

	lines := make([]models.SaleLine, 0, len(inputs))
	priced := make([]service.PricedLine, 0, len(inputs))

	for _, in := range inputs {
		var item models.Item
		if err := tx.Preload("RatePrices").First(&item, in.ItemID).Error; err != nil {
			return nil, decimal.Zero, decimal.Zero, fmt.Errorf("item %d not found", in.ItemID)
		}

		price := service.ResolveUnitPrice(&item, rateList)
		if in.UnitPrice != nil && in.UnitPrice.IsPositive() {
			price = *in.UnitPrice
		}

		feet := in.Feet
		if item.Category != models.CategoryAluminium {
			feet = one
		}

		pl := service.PricedLine{
			ItemID:          item.ID,
			Category:        item.Category,
			Qty:             in.Qty,
			UnitPrice:       price,
			Feet:            feet,
			DiscountPercent: in.DiscountPercent,
		}
		priced = append(priced, pl)

		lines = append(lines, models.SaleLine{
			ItemID:          item.ID,
			Name:            item.Name,
			Category:        item.Category,
			Color:           item.Color,
			Thickness:       item.Thickness,
			Qty:             in.Qty,
			UnitPrice:       price,
			Feet:            feet,
			DiscountPercent: in.DiscountPercent,
			LineNet:         service.LineNet(pl),
		})
	}

	if err := service.ValidateLines(priced); err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	if overallDiscount.IsNegative() || overallDiscount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("discount must be between 0 and 100")
	}

	subtotal, grand := service.ComputeTotals(priced, overallDiscount)
	return lines, subtotal, grand, nil
}
