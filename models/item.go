package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemCategory string

const (
	CategoryAluminium   ItemCategory = "Aluminium"
	CategoryGlass       ItemCategory = "Glass"
	CategoryHardware    ItemCategory = "Hardware"
	CategoryAccessories ItemCategory = "Accessories"
	CategoryOther       ItemCategory = "Other"
)

func ValidCategory(c ItemCategory) bool {
	switch c {
	case CategoryAluminium, CategoryGlass, CategoryHardware, CategoryAccessories, CategoryOther:
		return true
	}
	return false
}

type Item struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:200;not null" json:"name"`
	Category      ItemCategory    `gorm:"size:30;not null;index" json:"category"`
	Unit          string          `gorm:"size:30;not null" json:"unit"`
	Color         string          `gorm:"size:60" json:"color"`
	Thickness     string          `gorm:"size:60" json:"thickness"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"purchase_price"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"sale_price"`
	// kg per running foot, used only for Aluminium sections
	WeightPerFoot *decimal.Decimal `gorm:"type:decimal(20,4)" json:"weight_per_foot,omitempty"`

	RatePrices []RateListPrice `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"rate_prices"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// One override per (item, rate list name). The list itself has no table:
// a rate list exists as long as at least one override row carries its name.
type RateListPrice struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	ItemID   uint            `gorm:"index;not null;uniqueIndex:idx_rate_item_list" json:"item_id"`
	RateList string          `gorm:"size:120;not null;uniqueIndex:idx_rate_item_list" json:"rate_list"`
	Price    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
