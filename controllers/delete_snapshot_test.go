package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Deleting an item referenced by sale lines must succeed; the lines carry
// their own snapshot of the item fields.
func TestItemDeleteKeepsSaleLineSnapshots(t *testing.T) {
	r := setupRouter(t)

	user := models.User{Email: fmt.Sprintf("snap-%d@arco.local", time.Now().UnixNano()), Role: "admin", IsActive: true}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, user.Name, user.Role, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	customer := models.Customer{Name: "Snapshot Customer", BalanceType: models.BalanceDebit}
	if err := config.DB.Create(&customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	item := models.Item{
		Name:      "Discontinued Channel",
		Category:  models.CategoryAluminium,
		Unit:      "ft",
		Color:     "Bronze",
		SalePrice: decimal.NewFromInt(300),
	}
	if err := config.DB.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}

	create := doJSON(t, r, http.MethodPost, "/api/sales/", token, gin.H{
		"customer_id": customer.ID,
		"lines":       []gin.H{{"item_id": item.ID, "qty": "2", "feet": "8"}},
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("create sale: status %d body %s", create.Code, create.Body.String())
	}
	var created struct {
		Data models.Sale `json:"data"`
	}
	if err := json.Unmarshal(create.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/items/%d", item.ID), token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete referenced item: status %d body %s", w.Code, w.Body.String())
	}

	var line models.SaleLine
	if err := config.DB.Where("sale_id = ?", created.Data.ID).First(&line).Error; err != nil {
		t.Fatalf("load sale line: %v", err)
	}
	if line.Name != "Discontinued Channel" || line.Color != "Bronze" {
		t.Fatalf("snapshot lost: %q/%q", line.Name, line.Color)
	}
}

// A customer whose creation seeded an Opening Balance entry must still be
// deletable even though the reserved entry cannot be removed via the ledger.
func TestCustomerWithOpeningBalanceIsDeletable(t *testing.T) {
	r := setupRouter(t)

	user := models.User{Email: fmt.Sprintf("ob-%d@arco.local", time.Now().UnixNano()), Role: "admin", IsActive: true}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, user.Name, user.Role, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	create := doJSON(t, r, http.MethodPost, "/api/customers/", token, gin.H{
		"name":            "Opening Balance Customer",
		"opening_balance": "5000",
		"balance_type":    "debit",
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("create customer: status %d body %s", create.Code, create.Body.String())
	}
	var created struct {
		Data models.Customer `json:"data"`
	}
	if err := json.Unmarshal(create.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var entry models.Transaction
	if err := config.DB.Where("customer_id = ? AND category = ?", created.Data.ID, models.CategoryOpeningBalance).
		First(&entry).Error; err != nil {
		t.Fatalf("opening balance entry missing: %v", err)
	}

	if w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/customers/%d", created.Data.ID), token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete customer: status %d body %s", w.Code, w.Body.String())
	}
}
