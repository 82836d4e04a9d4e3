package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxDebit  TxType = "debit"
	TxCredit TxType = "credit"
)

// Reserved categories are written only by their owning flows (sale posting,
// customer/vendor creation, salary generation) and are protected from manual
// edits and deletes through the ledger endpoints.
const (
	CategorySale           = "Sale"
	CategoryOpeningBalance = "Opening Balance"
	CategorySalary         = "Salary"
)

func ReservedCategory(category string) bool {
	switch category {
	case CategorySale, CategoryOpeningBalance, CategorySalary:
		return true
	}
	return false
}

type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Type        TxType          `gorm:"size:10;not null" json:"type"`
	Category    string          `gorm:"size:120;not null;index" json:"category"`

	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `json:"customer,omitempty"`
	VendorID   *uint     `gorm:"index" json:"vendor_id,omitempty"`
	Vendor     *Vendor   `json:"vendor,omitempty"`

	// set only for category Sale; unique so a sale can never carry two
	// ledger entries
	SaleID *uint `gorm:"uniqueIndex" json:"sale_id,omitempty"`

	TxDate time.Time `gorm:"not null;index" json:"tx_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
