package service

import (
	"testing"

	"arco-factory-manager/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineNetAluminiumUsesFeet(t *testing.T) {
	l := PricedLine{
		ItemID:    1,
		Category:  models.CategoryAluminium,
		Qty:       dec("2"),
		UnitPrice: dec("450"),
		Feet:      dec("10"),
	}
	// 10 × 450 × 2 = 9000
	if got := LineNet(l); !got.Equal(dec("9000")) {
		t.Fatalf("LineNet = %s, want 9000", got)
	}

	l.DiscountPercent = dec("10")
	if got := LineNet(l); !got.Equal(dec("8100")) {
		t.Fatalf("LineNet with 10%% discount = %s, want 8100", got)
	}
}

func TestLengthFactorIgnoredForOtherCategories(t *testing.T) {
	for _, cat := range []models.ItemCategory{
		models.CategoryGlass,
		models.CategoryHardware,
		models.CategoryAccessories,
		models.CategoryOther,
	} {
		l := PricedLine{
			ItemID:    1,
			Category:  cat,
			Qty:       dec("3"),
			UnitPrice: dec("100"),
			Feet:      dec("50"), // entered but must not matter
		}
		if got := LineNet(l); !got.Equal(dec("300")) {
			t.Errorf("category %s: LineNet = %s, want 300", cat, got)
		}
	}
}

func TestWorkedExampleFromRateList(t *testing.T) {
	item := &models.Item{
		ID:        7,
		Category:  models.CategoryAluminium,
		SalePrice: dec("500"),
		RatePrices: []models.RateListPrice{
			{ItemID: 7, RateList: "Eid", Price: dec("450")},
		},
	}

	price := ResolveUnitPrice(item, "Eid")
	if !price.Equal(dec("450")) {
		t.Fatalf("ResolveUnitPrice(Eid) = %s, want 450", price)
	}

	lines := []PricedLine{{
		ItemID:          item.ID,
		Category:        item.Category,
		Qty:             dec("2"),
		UnitPrice:       price,
		Feet:            dec("10"),
		DiscountPercent: dec("10"),
	}}

	subtotal, grand := ComputeTotals(lines, dec("5"))
	if !subtotal.Equal(dec("8100")) {
		t.Fatalf("subtotal = %s, want 8100", subtotal)
	}
	if !grand.Equal(dec("7695")) {
		t.Fatalf("grand total = %s, want 7695", grand)
	}
}

func TestResolveUnitPriceFallsBackToBase(t *testing.T) {
	item := &models.Item{
		ID:        7,
		SalePrice: dec("500"),
		RatePrices: []models.RateListPrice{
			{ItemID: 7, RateList: "Eid", Price: dec("450")},
		},
	}

	if got := ResolveUnitPrice(item, "Winter"); !got.Equal(dec("500")) {
		t.Fatalf("missing override: got %s, want base 500", got)
	}
	if got := ResolveUnitPrice(item, ""); !got.Equal(dec("500")) {
		t.Fatalf("no active list: got %s, want base 500", got)
	}
	if got := ResolveUnitPrice(nil, "Eid"); !got.IsZero() {
		t.Fatalf("nil item: got %s, want 0", got)
	}
}

func TestInvalidLinesContributeZero(t *testing.T) {
	bad := []PricedLine{
		{ItemID: 0, Category: models.CategoryGlass, Qty: dec("2"), UnitPrice: dec("100")},
		{ItemID: 1, Category: models.CategoryGlass, Qty: dec("0"), UnitPrice: dec("100")},
		{ItemID: 1, Category: models.CategoryGlass, Qty: dec("-1"), UnitPrice: dec("100")},
		{ItemID: 1, Category: models.CategoryGlass, Qty: dec("2"), UnitPrice: dec("0")},
	}
	for i, l := range bad {
		if got := LineNet(l); !got.IsZero() {
			t.Errorf("line %d: LineNet = %s, want 0", i, got)
		}
	}

	good := PricedLine{ItemID: 1, Category: models.CategoryGlass, Qty: dec("2"), UnitPrice: dec("100"), Feet: dec("1")}
	subtotal, grand := ComputeTotals(append(bad, good), decimal.Zero)
	if !subtotal.Equal(dec("200")) || !grand.Equal(dec("200")) {
		t.Fatalf("totals = %s / %s, want 200 / 200", subtotal, grand)
	}
}

func TestValidateLinesRejectsAtSaveTime(t *testing.T) {
	if err := ValidateLines(nil); err == nil {
		t.Fatal("empty line set must be rejected")
	}

	cases := []PricedLine{
		{ItemID: 0, Category: models.CategoryGlass, Qty: dec("1"), UnitPrice: dec("10"), Feet: dec("1")},
		{ItemID: 1, Category: models.CategoryGlass, Qty: dec("0"), UnitPrice: dec("10"), Feet: dec("1")},
		{ItemID: 1, Category: models.CategoryGlass, Qty: dec("1"), UnitPrice: dec("0"), Feet: dec("1")},
		{ItemID: 1, Category: models.CategoryAluminium, Qty: dec("1"), UnitPrice: dec("10"), Feet: dec("0")},
		{ItemID: 1, Category: models.CategoryGlass, Qty: dec("1"), UnitPrice: dec("10"), Feet: dec("1"), DiscountPercent: dec("101")},
	}
	for i, l := range cases {
		if err := ValidateLines([]PricedLine{l}); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}

	ok := PricedLine{ItemID: 1, Category: models.CategoryAluminium, Qty: dec("1"), UnitPrice: dec("10"), Feet: dec("8"), DiscountPercent: dec("100")}
	if err := ValidateLines([]PricedLine{ok}); err != nil {
		t.Fatalf("valid line rejected: %v", err)
	}
}

func TestComputeTotalsMultipleLines(t *testing.T) {
	lines := []PricedLine{
		{ItemID: 1, Category: models.CategoryAluminium, Qty: dec("2"), UnitPrice: dec("450"), Feet: dec("10"), DiscountPercent: dec("10")},
		{ItemID: 2, Category: models.CategoryGlass, Qty: dec("4"), UnitPrice: dec("250"), Feet: dec("1")},
		{ItemID: 3, Category: models.CategoryHardware, Qty: dec("10"), UnitPrice: dec("35"), Feet: dec("1"), DiscountPercent: dec("50")},
	}
	// 8100 + 1000 + 175 = 9275; ×0.9 = 8347.50
	subtotal, grand := ComputeTotals(lines, dec("10"))
	if !subtotal.Equal(dec("9275")) {
		t.Fatalf("subtotal = %s, want 9275", subtotal)
	}
	if !grand.Equal(dec("8347.5")) {
		t.Fatalf("grand = %s, want 8347.5", grand)
	}
}
