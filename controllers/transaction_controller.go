package controllers

import (
	"errors"
	"net/http"
	"time"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionInput struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        models.TxType   `json:"type" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	CustomerID  *uint           `json:"customer_id"`
	VendorID    *uint           `json:"vendor_id"`
	TxDate      time.Time       `json:"tx_date"`
}

func validateTxInput(in *TransactionInput) error {
	if in.Type != models.TxDebit && in.Type != models.TxCredit {
		return errors.New("type must be debit or credit")
	}
	if !in.Amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	if models.ReservedCategory(in.Category) {
		return errReservedCategory
	}
	if in.TxDate.IsZero() {
		in.TxDate = time.Now().UTC()
	}
	return nil
}

func GetAllTransactions(c *gin.Context) {
	var fromT, toT *time.Time
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "from must be YYYY-MM-DD", nil)
			return
		}
		fromT = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "to must be YYYY-MM-DD", nil)
			return
		}
		toT = &t
	}

	q := config.DB.Preload("Customer").Preload("Vendor").Order("tx_date DESC, id DESC")
	if cid := c.Query("customer_id"); cid != "" {
		q = q.Where("customer_id = ?", cid)
	}
	if vid := c.Query("vendor_id"); vid != "" {
		q = q.Where("vendor_id = ?", vid)
	}
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if fromT != nil {
		q = q.Where("tx_date >= ?", *fromT)
	}
	if toT != nil {
		q = q.Where("tx_date < ?", toT.AddDate(0, 0, 1))
	}

	var rows []models.Transaction
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch transactions", err)
		return
	}
	utils.Success(c, "transactions", rows)
}

// CreateTransaction records a manual ledger entry. Reserved categories are
// written only by their owning flows and are rejected here.
func CreateTransaction(c *gin.Context) {
	var in TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if err := validateTxInput(&in); err != nil {
		if errors.Is(err, errReservedCategory) {
			utils.Error(c, http.StatusBadRequest, "category is reserved for system entries", nil)
			return
		}
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	row := models.Transaction{
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		CustomerID:  in.CustomerID,
		VendorID:    in.VendorID,
		TxDate:      in.TxDate,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		config.LogError("ledger", "CreateTransaction", "insert", err)
		utils.Error(c, http.StatusInternalServerError, "failed to create transaction", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "transaction created", "data": row})
}

func UpdateTransaction(c *gin.Context) {
	var row models.Transaction
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "transaction not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch transaction", err)
		return
	}
	if models.ReservedCategory(row.Category) {
		utils.Error(c, http.StatusForbidden, "system entries cannot be edited from the ledger", nil)
		return
	}

	var in TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if err := validateTxInput(&in); err != nil {
		if errors.Is(err, errReservedCategory) {
			utils.Error(c, http.StatusBadRequest, "category is reserved for system entries", nil)
			return
		}
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	row.Description = in.Description
	row.Amount = in.Amount
	row.Type = in.Type
	row.Category = in.Category
	row.CustomerID = in.CustomerID
	row.VendorID = in.VendorID
	row.TxDate = in.TxDate

	if err := config.DB.Save(&row).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update transaction", err)
		return
	}
	utils.Success(c, "transaction updated", row)
}

// DeleteTransaction refuses reserved-category rows; those only go away with
// the sale, salary or account that created them.
func DeleteTransaction(c *gin.Context) {
	var row models.Transaction
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "transaction not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch transaction", err)
		return
	}
	if models.ReservedCategory(row.Category) {
		utils.Error(c, http.StatusForbidden, "system entries cannot be deleted from the ledger", nil)
		return
	}
	if err := config.DB.Delete(&row).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to delete transaction", err)
		return
	}
	utils.Success(c, "transaction deleted", nil)
}

type balanceRow struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// CustomerBalance folds every ledger entry for the customer, opening balance
// included (it is posted as a real entry at creation time).
func CustomerBalance(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "customer not found", err)
		return
	}

	var row balanceRow
	err := config.DB.Model(&models.Transaction{}).
		Select(`
			COALESCE(SUM(CASE WHEN type = 'debit'  THEN amount ELSE 0 END), 0) AS debit,
			COALESCE(SUM(CASE WHEN type = 'credit' THEN amount ELSE 0 END), 0) AS credit
		`).
		Where("customer_id = ?", customer.ID).
		Scan(&row).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to compute balance", err)
		return
	}

	utils.Success(c, "customer balance", gin.H{
		"customer": customer,
		"debit":    row.Debit,
		"credit":   row.Credit,
		"balance":  row.Debit.Sub(row.Credit),
	})
}

func VendorBalance(c *gin.Context) {
	var vendor models.Vendor
	if err := config.DB.First(&vendor, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "vendor not found", err)
		return
	}

	var row balanceRow
	err := config.DB.Model(&models.Transaction{}).
		Select(`
			COALESCE(SUM(CASE WHEN type = 'debit'  THEN amount ELSE 0 END), 0) AS debit,
			COALESCE(SUM(CASE WHEN type = 'credit' THEN amount ELSE 0 END), 0) AS credit
		`).
		Where("vendor_id = ?", vendor.ID).
		Scan(&row).Error
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to compute balance", err)
		return
	}

	utils.Success(c, "vendor balance", gin.H{
		"vendor":  vendor,
		"debit":   row.Debit,
		"credit":  row.Credit,
		"balance": row.Credit.Sub(row.Debit),
	})
}
