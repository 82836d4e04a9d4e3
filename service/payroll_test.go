package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSalaryPayable(t *testing.T) {
	// (30000 / 30) × 25 + 500 = 25500
	got, err := SalaryPayable(dec("30000"), 30, 25, dec("500"))
	if err != nil {
		t.Fatalf("SalaryPayable: %v", err)
	}
	if !got.Equal(dec("25500")) {
		t.Fatalf("payable = %s, want 25500", got)
	}
}

func TestSalaryPayableFullMonthNoOvertime(t *testing.T) {
	got, err := SalaryPayable(dec("45000"), 26, 26, decimal.Zero)
	if err != nil {
		t.Fatalf("SalaryPayable: %v", err)
	}
	if !got.Equal(dec("45000")) {
		t.Fatalf("payable = %s, want 45000", got)
	}
}

func TestSalaryPayableRounding(t *testing.T) {
	// 10000 / 30 × 7 = 2333.333... → 2333.33
	got, err := SalaryPayable(dec("10000"), 30, 7, decimal.Zero)
	if err != nil {
		t.Fatalf("SalaryPayable: %v", err)
	}
	if !got.Equal(dec("2333.33")) {
		t.Fatalf("payable = %s, want 2333.33", got)
	}
}

func TestSalaryPayableGuards(t *testing.T) {
	if _, err := SalaryPayable(dec("30000"), 0, 10, decimal.Zero); !errors.Is(err, ErrBadWorkingDays) {
		t.Fatalf("working days 0: got %v", err)
	}
	if _, err := SalaryPayable(dec("30000"), 30, -1, decimal.Zero); !errors.Is(err, ErrBadDaysWorked) {
		t.Fatalf("negative days worked: got %v", err)
	}
	if _, err := SalaryPayable(dec("30000"), 30, 31, decimal.Zero); !errors.Is(err, ErrBadDaysWorked) {
		t.Fatalf("days worked over working days: got %v", err)
	}
}
