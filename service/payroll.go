package service

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrBadWorkingDays = errors.New("working days must be greater than zero")
	ErrBadDaysWorked  = errors.New("days worked must be between zero and working days")
)

// SalaryPayable computes (monthlySalary / workingDays) × daysWorked + overtime,
// rounded to 2 places.
func SalaryPayable(monthlySalary decimal.Decimal, workingDays, daysWorked int, overtime decimal.Decimal) (decimal.Decimal, error) {
	if workingDays <= 0 {
		return decimal.Zero, ErrBadWorkingDays
	}
	if daysWorked < 0 || daysWorked > workingDays {
		return decimal.Zero, ErrBadDaysWorked
	}
	perDay := monthlySalary.Div(decimal.NewFromInt(int64(workingDays)))
	payable := perDay.Mul(decimal.NewFromInt(int64(daysWorked))).Add(overtime)
	return payable.Round(2), nil
}
