package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// An estimate is a quotation: same shape as a sale but with no lifecycle
// and no ledger effect.
type Estimate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EstimateNo string    `gorm:"uniqueIndex;size:40;not null" json:"estimate_no"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Customer   *Customer `json:"customer,omitempty"`
	Date       time.Time `gorm:"not null" json:"date"`

	Description     string          `gorm:"size:500" json:"description"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(6,2);default:0" json:"discount_percent"`
	RateList        string          `gorm:"size:120" json:"rate_list"`

	Subtotal     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"subtotal"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"grand_total"`
	ShowSubtotal bool            `gorm:"default:false" json:"show_subtotal"`

	Lines []EstimateLine `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"lines"`

	CreatedByID uint      `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EstimateLine struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EstimateID uint `gorm:"index;not null" json:"estimate_id"`

	ItemID    uint         `gorm:"not null" json:"item_id"`
	Item      *Item        `json:"item,omitempty"`
	Name      string       `gorm:"size:200;not null" json:"name"`
	Category  ItemCategory `gorm:"size:30;not null" json:"category"`
	Color     string       `gorm:"size:60" json:"color"`
	Thickness string       `gorm:"size:60" json:"thickness"`

	Qty             decimal.Decimal `gorm:"type:decimal(20,3);not null" json:"qty"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"unit_price"`
	Feet            decimal.Decimal `gorm:"type:decimal(20,3);default:1" json:"feet"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(6,2);default:0" json:"discount_percent"`
	LineNet         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"line_net"`
}
