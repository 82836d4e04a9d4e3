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

type ExpenseInput struct {
	Title    string          `json:"title" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Category string          `json:"category"`
	VendorID *uint           `json:"vendor_id"`
	Date     time.Time       `json:"date"`
}

func GetAllExpenses(c *gin.Context) {
	q := config.DB.Preload("Vendor").Order("date DESC, id DESC")
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if vid := c.Query("vendor_id"); vid != "" {
		q = q.Where("vendor_id = ?", vid)
	}
	var rows []models.Expense
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch expenses", err)
		return
	}
	utils.Success(c, "expenses", rows)
}

func CreateExpense(c *gin.Context) {
	var in ExpenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if !in.Amount.IsPositive() {
		utils.Error(c, http.StatusBadRequest, "amount must be greater than zero", nil)
		return
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}

	row := models.Expense{
		Title:    in.Title,
		Amount:   in.Amount,
		Category: in.Category,
		VendorID: in.VendorID,
		Date:     in.Date,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		config.LogError("expenses", "CreateExpense", "insert", err)
		utils.Error(c, http.StatusInternalServerError, "failed to create expense", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "expense created", "data": row})
}

func UpdateExpense(c *gin.Context) {
	var row models.Expense
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "expense not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch expense", err)
		return
	}

	var in ExpenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if !in.Amount.IsPositive() {
		utils.Error(c, http.StatusBadRequest, "amount must be greater than zero", nil)
		return
	}
	if in.Date.IsZero() {
		in.Date = row.Date
	}

	row.Title = in.Title
	row.Amount = in.Amount
	row.Category = in.Category
	row.VendorID = in.VendorID
	row.Date = in.Date

	if err := config.DB.Save(&row).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update expense", err)
		return
	}
	utils.Success(c, "expense updated", row)
}

func DeleteExpense(c *gin.Context) {
	res := config.DB.Delete(&models.Expense{}, c.Param("id"))
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to delete expense", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "expense not found", nil)
		return
	}
	utils.Success(c, "expense deleted", nil)
}
