package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ===== report row DTOs =====

type SalesReportRow struct {
	SaleID       uint            `json:"sale_id"`
	SaleNo       string          `json:"sale_no"`
	SaleDate     time.Time       `json:"sale_date"`
	CustomerID   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

type SalesReport struct {
	Rows  []SalesReportRow `json:"rows"`
	Total decimal.Decimal  `json:"total"`
}

type CollativeSalesRow struct {
	CustomerID   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	SaleCount    int64           `json:"sale_count"`
	Total        decimal.Decimal `json:"total"`
}

type TopItemRow struct {
	ItemID   uint            `json:"item_id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	TotalQty decimal.Decimal `json:"total_qty"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ===== service =====

type Reports interface {
	// invoice-style report over an explicit selection of sales
	SalesByIDs(ctx context.Context, ids []uint) (SalesReport, error)

	// per-customer totals over a date range
	CollativeSales(ctx context.Context, from, to time.Time) ([]CollativeSalesRow, error)

	// best sellers by quantity over a date range
	TopSellingItems(ctx context.Context, from, to time.Time, limit int) ([]TopItemRow, error)
}

type reports struct{ db *gorm.DB }

func NewReports(db *gorm.DB) Reports { return &reports{db: db} }

func (r *reports) SalesByIDs(ctx context.Context, ids []uint) (SalesReport, error) {
	var rows []SalesReportRow
	if len(ids) == 0 {
		return SalesReport{Rows: rows, Total: decimal.Zero}, nil
	}
	err := r.db.WithContext(ctx).
		Table("sales").
		Select(`
			sales.id   AS sale_id,
			sales.sale_no,
			sales.sale_date,
			sales.customer_id,
			c.name     AS customer_name,
			sales.status,
			sales.subtotal,
			sales.grand_total
		`).
		Joins("INNER JOIN customers c ON c.id = sales.customer_id").
		Where("sales.id IN ?", ids).
		Order("sales.sale_date ASC, sales.id ASC").
		Scan(&rows).Error
	if err != nil {
		return SalesReport{}, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.GrandTotal)
	}
	return SalesReport{Rows: rows, Total: total}, nil
}

func (r *reports) CollativeSales(ctx context.Context, from, to time.Time) ([]CollativeSalesRow, error) {
	var rows []CollativeSalesRow
	err := r.db.WithContext(ctx).
		Table("sales").
		Select(`
			sales.customer_id,
			c.name                  AS customer_name,
			COUNT(sales.id)         AS sale_count,
			SUM(sales.grand_total)  AS total
		`).
		Joins("INNER JOIN customers c ON c.id = sales.customer_id").
		Where("sales.sale_date BETWEEN ? AND ?", from, to).
		Group("sales.customer_id, c.name").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reports) TopSellingItems(ctx context.Context, from, to time.Time, limit int) ([]TopItemRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var rows []TopItemRow
	err := r.db.WithContext(ctx).
		Table("sale_lines").
		Select(`
			sale_lines.item_id,
			sale_lines.name,
			sale_lines.category,
			SUM(sale_lines.qty)      AS total_qty,
			SUM(sale_lines.line_net) AS revenue
		`).
		Joins("INNER JOIN sales s ON s.id = sale_lines.sale_id").
		Where("s.sale_date BETWEEN ? AND ?", from, to).
		Group("sale_lines.item_id, sale_lines.name, sale_lines.category").
		Order("total_qty DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
