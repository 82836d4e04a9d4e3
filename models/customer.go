package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceType string

const (
	BalanceDebit  BalanceType = "debit"
	BalanceCredit BalanceType = "credit"
)

type Customer struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:180;not null" json:"name"`
	Phone          string          `gorm:"size:60" json:"phone"`
	Address        string          `gorm:"size:255" json:"address"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"opening_balance"`
	// recorded once at creation, seeds the Opening Balance ledger entry
	BalanceType BalanceType `gorm:"size:10;default:debit" json:"balance_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
