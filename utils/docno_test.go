package utils

import (
	"testing"
	"time"
)

func TestDocNumbers(t *testing.T) {
	d := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if got := GenSaleNo(123, d); got != "SL-2026-000123" {
		t.Fatalf("GenSaleNo = %q", got)
	}
	if got := GenEstimateNo(7, d); got != "ES-2026-000007" {
		t.Fatalf("GenEstimateNo = %q", got)
	}
}
