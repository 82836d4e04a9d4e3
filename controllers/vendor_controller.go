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

type VendorInput struct {
	Name           string             `json:"name" binding:"required"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
	BalanceType    models.BalanceType `json:"balance_type"`
}

func GetAllVendors(c *gin.Context) {
	var rows []models.Vendor
	if err := config.DB.Order("name ASC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch vendors", err)
		return
	}
	utils.Success(c, "vendors", rows)
}

func GetVendorByID(c *gin.Context) {
	var row models.Vendor
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "vendor not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch vendor", err)
		return
	}
	utils.Success(c, "vendor", row)
}

func CreateVendor(c *gin.Context) {
	var in VendorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if in.BalanceType == "" {
		in.BalanceType = models.BalanceCredit
	}
	if in.BalanceType != models.BalanceDebit && in.BalanceType != models.BalanceCredit {
		utils.Error(c, http.StatusBadRequest, "balance_type must be debit or credit", nil)
		return
	}
	if in.OpeningBalance.IsNegative() {
		utils.Error(c, http.StatusBadRequest, "opening balance must not be negative", nil)
		return
	}

	row := models.Vendor{
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
				VendorID:    &row.ID,
				TxDate:      time.Now().UTC(),
			}
			return tx.Create(&entry).Error
		}
		return nil
	})
	if err != nil {
		config.LogError("vendors", "CreateVendor", "insert", err)
		utils.Error(c, http.StatusInternalServerError, "failed to create vendor", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "vendor created", "data": row})
}

func UpdateVendor(c *gin.Context) {
	var row models.Vendor
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "vendor not found", err)
		return
	}

	var in VendorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	row.Name = in.Name
	row.Phone = in.Phone
	row.Address = in.Address

	if err := config.DB.Save(&row).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update vendor", err)
		return
	}
	utils.Success(c, "vendor updated", row)
}

func DeleteVendor(c *gin.Context) {
	res := config.DB.Delete(&models.Vendor{}, c.Param("id"))
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to delete vendor", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "vendor not found", nil)
		return
	}
	utils.Success(c, "vendor deleted", nil)
}
