package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/routes"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 and DATABASE_URL to run integration tests")
	}

	gin.SetMode(gin.TestMode)
	config.ConnectDB()
	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.RateListPrice{},
		&models.Customer{},
		&models.Vendor{},
		&models.Sale{},
		&models.SaleLine{},
		&models.Estimate{},
		&models.EstimateLine{},
		&models.Transaction{},
		&models.Expense{},
		&models.Labour{},
		&models.SalaryPayment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSaleLifecycleLedgerEffects(t *testing.T) {
	r := setupRouter(t)

	user := models.User{Email: fmt.Sprintf("test-%d@arco.local", time.Now().UnixNano()), Role: "admin", IsActive: true}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, user.Name, user.Role, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	customer := models.Customer{Name: "Lifecycle Customer", BalanceType: models.BalanceDebit}
	if err := config.DB.Create(&customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	item := models.Item{
		Name:      "Deluxe Section",
		Category:  models.CategoryAluminium,
		Unit:      "ft",
		SalePrice: decimal.NewFromInt(450),
	}
	if err := config.DB.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}

	// create a draft sale: 10ft × 450 × 2 less 10% line and 5% overall = 7695
	create := doJSON(t, r, http.MethodPost, "/api/sales/", token, gin.H{
		"customer_id":      customer.ID,
		"discount_percent": "5",
		"lines": []gin.H{{
			"item_id":          item.ID,
			"qty":              "2",
			"feet":             "10",
			"discount_percent": "10",
		}},
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("create sale: status %d body %s", create.Code, create.Body.String())
	}
	var created struct {
		Data models.Sale `json:"data"`
	}
	if err := json.Unmarshal(create.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	sale := created.Data
	if sale.Status != models.SaleDraft {
		t.Fatalf("new sale status = %s, want draft", sale.Status)
	}
	if !sale.GrandTotal.Equal(decimal.NewFromInt(7695)) {
		t.Fatalf("grand total = %s, want 7695", sale.GrandTotal)
	}

	txCount := func() int64 {
		var n int64
		config.DB.Model(&models.Transaction{}).Where("sale_id = ?", sale.ID).Count(&n)
		return n
	}

	// post: exactly one debit ledger entry of category Sale, amount = total
	if w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/sales/%d/post", sale.ID), token, nil); w.Code != http.StatusOK {
		t.Fatalf("post sale: status %d body %s", w.Code, w.Body.String())
	}
	if n := txCount(); n != 1 {
		t.Fatalf("transactions after post = %d, want 1", n)
	}
	var entry models.Transaction
	if err := config.DB.Where("sale_id = ?", sale.ID).First(&entry).Error; err != nil {
		t.Fatalf("load ledger entry: %v", err)
	}
	if entry.Type != models.TxDebit || entry.Category != models.CategorySale {
		t.Fatalf("entry = %s/%s, want debit/Sale", entry.Type, entry.Category)
	}
	if !entry.Amount.Equal(sale.GrandTotal) {
		t.Fatalf("entry amount = %s, want %s", entry.Amount, sale.GrandTotal)
	}
	if entry.CustomerID == nil || *entry.CustomerID != customer.ID {
		t.Fatalf("entry customer = %v, want %d", entry.CustomerID, customer.ID)
	}

	// double post is a conflict, not a duplicate entry
	if w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/sales/%d/post", sale.ID), token, nil); w.Code != http.StatusConflict {
		t.Fatalf("double post: status %d, want 409", w.Code)
	}
	if n := txCount(); n != 1 {
		t.Fatalf("transactions after double post = %d, want 1", n)
	}

	// the reserved entry cannot be deleted or edited through the ledger
	if w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", entry.ID), token, nil); w.Code != http.StatusForbidden {
		t.Fatalf("reserved delete: status %d, want 403", w.Code)
	}
	if w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/transactions/%d", entry.ID), token, gin.H{
		"description": "tampered",
		"amount":      "1",
		"type":        "debit",
		"category":    "Misc",
	}); w.Code != http.StatusForbidden {
		t.Fatalf("reserved edit: status %d, want 403", w.Code)
	}

	// posted sales are immutable through the edit path
	if w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/sales/%d", sale.ID), token, gin.H{
		"customer_id": customer.ID,
		"lines":       []gin.H{{"item_id": item.ID, "qty": "1", "feet": "1"}},
	}); w.Code != http.StatusConflict {
		t.Fatalf("edit posted: status %d, want 409", w.Code)
	}

	// unpost removes the entry and returns the sale to draft
	if w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/sales/%d/unpost", sale.ID), token, nil); w.Code != http.StatusOK {
		t.Fatalf("unpost: status %d body %s", w.Code, w.Body.String())
	}
	if n := txCount(); n != 0 {
		t.Fatalf("transactions after unpost = %d, want 0", n)
	}
	var reloaded models.Sale
	if err := config.DB.First(&reloaded, sale.ID).Error; err != nil {
		t.Fatalf("reload sale: %v", err)
	}
	if reloaded.Status != models.SaleDraft {
		t.Fatalf("status after unpost = %s, want draft", reloaded.Status)
	}

	// delete a posted sale: sale and its entry both go
	if w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/sales/%d/post", sale.ID), token, nil); w.Code != http.StatusOK {
		t.Fatalf("repost: status %d body %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/sales/%d", sale.ID), token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete posted sale: status %d body %s", w.Code, w.Body.String())
	}
	if n := txCount(); n != 0 {
		t.Fatalf("transactions after delete = %d, want 0", n)
	}
	var saleCount int64
	config.DB.Model(&models.Sale{}).Where("id = ?", sale.ID).Count(&saleCount)
	if saleCount != 0 {
		t.Fatalf("sale still present after delete")
	}
}

func TestDraftSaleDeleteLeavesLedgerAlone(t *testing.T) {
	r := setupRouter(t)

	user := models.User{Email: fmt.Sprintf("draft-%d@arco.local", time.Now().UnixNano()), Role: "admin", IsActive: true}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, user.Name, user.Role, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	customer := models.Customer{Name: "Draft Customer", BalanceType: models.BalanceDebit}
	if err := config.DB.Create(&customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	item := models.Item{Name: "Plain Glass", Category: models.CategoryGlass, Unit: "sqft", SalePrice: decimal.NewFromInt(250)}
	if err := config.DB.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}

	var before int64
	config.DB.Model(&models.Transaction{}).Count(&before)

	create := doJSON(t, r, http.MethodPost, "/api/sales/", token, gin.H{
		"customer_id": customer.ID,
		"lines":       []gin.H{{"item_id": item.ID, "qty": "4", "feet": "99"}},
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
	// feet is pinned to 1 for non-Aluminium: 4 × 250
	if !created.Data.GrandTotal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("grand total = %s, want 1000", created.Data.GrandTotal)
	}

	// updating with a stale customer reference is a clean 400
	if w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/sales/%d", created.Data.ID), token, gin.H{
		"customer_id": 99999999,
		"lines":       []gin.H{{"item_id": item.ID, "qty": "1"}},
	}); w.Code != http.StatusBadRequest {
		t.Fatalf("stale customer update: status %d, want 400", w.Code)
	}

	if w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/sales/%d", created.Data.ID), token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete draft: status %d body %s", w.Code, w.Body.String())
	}

	var after int64
	config.DB.Model(&models.Transaction{}).Count(&after)
	if before != after {
		t.Fatalf("ledger changed by draft delete: %d -> %d", before, after)
	}
}
