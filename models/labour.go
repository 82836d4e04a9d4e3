package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Labour struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:180;not null" json:"name"`
	Phone         string          `gorm:"size:60" json:"phone"`
	MonthlySalary decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"monthly_salary"`
	JoinedAt      time.Time       `json:"joined_at"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// One payment per labourer per month; the composite unique index is the
// duplicate-generation guard.
type SalaryPayment struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	LabourID uint    `gorm:"not null;index;uniqueIndex:idx_salary_labour_month" json:"labour_id"`
	Labour   *Labour `json:"labour,omitempty"`

	Month int `gorm:"not null;uniqueIndex:idx_salary_labour_month" json:"month"`
	Year  int `gorm:"not null;uniqueIndex:idx_salary_labour_month" json:"year"`

	WorkingDays int             `gorm:"not null" json:"working_days"`
	DaysWorked  int             `gorm:"not null" json:"days_worked"`
	Overtime    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"overtime"`
	Payable     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"payable"`

	GeneratedAt time.Time `gorm:"not null" json:"generated_at"`
	CreatedAt   time.Time `json:"created_at"`
}
