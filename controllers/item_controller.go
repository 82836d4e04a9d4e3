package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemInput struct {
	Name          string              `json:"name" binding:"required"`
	Category      models.ItemCategory `json:"category" binding:"required"`
	Unit          string              `json:"unit" binding:"required"`
	Color         string              `json:"color"`
	Thickness     string              `json:"thickness"`
	PurchasePrice decimal.Decimal     `json:"purchase_price"`
	SalePrice     decimal.Decimal     `json:"sale_price" binding:"required"`
	WeightPerFoot *decimal.Decimal    `json:"weight_per_foot"`
}

func GetAllItems(c *gin.Context) {
	q := config.DB.Preload("RatePrices").Order("name ASC")
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	var items []models.Item
	if err := q.Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch items", err)
		return
	}
	utils.Success(c, "items", items)
}

func GetItemByID(c *gin.Context) {
	var item models.Item
	if err := config.DB.Preload("RatePrices").First(&item, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "item not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch item", err)
		return
	}
	utils.Success(c, "item", item)
}

func CreateItem(c *gin.Context) {
	var in ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if !models.ValidCategory(in.Category) {
		utils.Error(c, http.StatusBadRequest, "unknown category", nil)
		return
	}
	if in.SalePrice.IsNegative() || in.PurchasePrice.IsNegative() {
		utils.Error(c, http.StatusBadRequest, "price must not be negative", nil)
		return
	}

	item := models.Item{
		Name:          in.Name,
		Category:      in.Category,
		Unit:          in.Unit,
		Color:         in.Color,
		Thickness:     in.Thickness,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		WeightPerFoot: in.WeightPerFoot,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		config.LogError("items", "CreateItem", "insert", err)
		utils.Error(c, http.StatusInternalServerError, "failed to create item", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "item created", "data": item})
}

func UpdateItem(c *gin.Context) {
	var item models.Item
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "item not found", err)
		return
	}

	var in ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if !models.ValidCategory(in.Category) {
		utils.Error(c, http.StatusBadRequest, "unknown category", nil)
		return
	}

	item.Name = in.Name
	item.Category = in.Category
	item.Unit = in.Unit
	item.Color = in.Color
	item.Thickness = in.Thickness
	item.PurchasePrice = in.PurchasePrice
	item.SalePrice = in.SalePrice
	item.WeightPerFoot = in.WeightPerFoot

	if err := config.DB.Save(&item).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update item", err)
		return
	}
	utils.Success(c, "item updated", item)
}

// Items are only ever deleted explicitly. Sale lines keep their snapshot
// fields, so history survives the delete.
func DeleteItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	res := config.DB.Delete(&models.Item{}, uint(id))
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to delete item", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "item not found", nil)
		return
	}
	utils.Success(c, "item deleted", nil)
}
