package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Title    string          `gorm:"size:200;not null" json:"title"`
	Amount   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Category string          `gorm:"size:120" json:"category"`
	VendorID *uint           `gorm:"index" json:"vendor_id,omitempty"`
	Vendor   *Vendor         `json:"vendor,omitempty"`
	Date     time.Time       `gorm:"not null;index" json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
