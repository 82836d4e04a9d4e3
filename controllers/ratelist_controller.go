package controllers

import (
	"net/http"
	"strings"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// A rate list is identified purely by its name; the list of lists is the set
// of distinct names over the override rows.
func GetRateLists(c *gin.Context) {
	var names []string
	if err := config.DB.Model(&models.RateListPrice{}).
		Distinct("rate_list").
		Order("rate_list ASC").
		Pluck("rate_list", &names).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch rate lists", err)
		return
	}
	utils.Success(c, "rate lists", names)
}

func GetRateListPrices(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		utils.Error(c, http.StatusBadRequest, "rate list name required", nil)
		return
	}
	var rows []models.RateListPrice
	if err := config.DB.Where("rate_list = ?", name).Order("item_id ASC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch rate list prices", err)
		return
	}
	utils.Success(c, "rate list prices", rows)
}

type RateListPriceInput struct {
	ItemID uint            `json:"item_id" binding:"required"`
	Price  decimal.Decimal `json:"price" binding:"required"`
}

type RateListBatchInput struct {
	RateList string               `json:"rate_list" binding:"required"`
	Prices   []RateListPriceInput `json:"prices" binding:"required,min=1"`
}

// BatchUpdateRateList upserts the override price of every given item under
// the named list. Using a name for the first time creates the list.
func BatchUpdateRateList(c *gin.Context) {
	var in RateListBatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	in.RateList = strings.TrimSpace(in.RateList)
	if in.RateList == "" {
		utils.Error(c, http.StatusBadRequest, "rate list name required", nil)
		return
	}
	for _, p := range in.Prices {
		if !p.Price.IsPositive() {
			utils.Error(c, http.StatusBadRequest, "price must be greater than zero", nil)
			return
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, p := range in.Prices {
			var cnt int64
			if err := tx.Model(&models.Item{}).Where("id = ?", p.ItemID).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt == 0 {
				continue // stale item reference, skip silently
			}
			row := models.RateListPrice{
				ItemID:   p.ItemID,
				RateList: in.RateList,
				Price:    p.Price,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "item_id"}, {Name: "rate_list"}},
				DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.LogError("ratelists", "BatchUpdateRateList", "upsert", err)
		utils.Error(c, http.StatusInternalServerError, "failed to update rate list", err)
		return
	}
	utils.Success(c, "rate list updated", nil)
}

func DeleteRateList(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		utils.Error(c, http.StatusBadRequest, "rate list name required", nil)
		return
	}
	res := config.DB.Where("rate_list = ?", name).Delete(&models.RateListPrice{})
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to delete rate list", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "rate list not found", nil)
		return
	}
	utils.Success(c, "rate list deleted", nil)
}
