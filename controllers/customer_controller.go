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

type CustomerInput struct {
	Name           string             `json:"name" binding:"required"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
	BalanceType    models.BalanceType `json:"balance_type"`
}

func GetAllCustomers(c *gin.Context) {
	var rows []models.Customer
	if err := config.DB.Order("name ASC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch customers", err)
		return
	}
	utils.Success(c, "customers", rows)
}

func GetCustomerByID(c *gin.Context) {
	var row models.Customer
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "customer not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch customer", err)
		return
	}
	utils.Success(c, "customer", row)
}

// CreateCustomer records the customer and, when an opening balance is given,
// seeds the ledger with one reserved Opening Balance entry in the same DB
// transaction.
func CreateCustomer(c *gin.Context) {
	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if in.BalanceType == "" {
		in.BalanceType = models.BalanceDebit
	}
	if in.BalanceType != models.BalanceDebit && in.BalanceType != models.BalanceCredit {
		utils.Error(c, http.StatusBadRequest, "balance_type must be debit or credit", nil)
		return
	}
	if in.OpeningBalance.IsNegative() {
		utils.Error(c, http.StatusBadRequest, "opening balance must not be negative", nil)
		return
	}

	row := models.Customer{
		Name:           in.Name,
		Phone:          in.Phone,
		Address:        in.Address,
		OpeningBalance: in.OpeningBalance,
		BalanceType:    in.BalanceType,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if row.OpeningBalance.IsPositive() {
			entry := models.Transaction{
				Description: "Opening Balance - " + row.Name,
				Amount:      row.OpeningBalance,
				Type:        models.TxType(row.BalanceType),
				Category:    models.CategoryOpeningBalance,
				CustomerID:  &row.ID,
				TxDate:      time.Now().UTC(),
			}
			return tx.Create(&entry).Error
		}
		return nil
	})
	if err != nil {
		config.LogError("customers", "CreateCustomer", "insert", err)
		utils.Error(c, http.StatusInternalServerError, "failed to create customer", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "customer created", "data": row})
}

func UpdateCustomer(c *gin.Context) {
	var row models.Customer
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "customer not found", err)
		return
	}

	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	// opening balance and its type are fixed at creation
	row.Name = in.Name
	row.Phone = in.Phone
	row.Address = in.Address

	if err := config.DB.Save(&row).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update customer", err)
		return
	}
	utils.Success(c, "customer updated", row)
}

func DeleteCustomer(c *gin.Context) {
	res := config.DB.Delete(&models.Customer{}, c.Param("id"))
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to delete customer", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "customer not found", nil)
		return
	}
	utils.Success(c, "customer deleted", nil)
}
