package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EstimateInput struct {
	CustomerID      uint            `json:"customer_id" binding:"required"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	RateList        string          `json:"rate_list"`
	ShowSubtotal    bool            `json:"show_subtotal"`
	Lines           []LineInput     `json:"lines" binding:"required,min=1"`
}

func toEstimateLines(lines []models.SaleLine) []models.EstimateLine {
	out := make([]models.EstimateLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, models.EstimateLine{
			ItemID:          l.ItemID,
			Name:            l.Name,
			Category:        l.Category,
			Color:           l.Color,
			Thickness:       l.Thickness,
			Qty:             l.Qty,
			UnitPrice:       l.UnitPrice,
			Feet:            l.Feet,
			DiscountPercent: l.DiscountPercent,
			LineNet:         l.LineNet,
		})
	}
	return out
}

func CreateEstimate(c *gin.Context) {
	var in EstimateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}

	var cnt int64
	if err := config.DB.Model(&models.Customer{}).Where("id = ?", in.CustomerID).Count(&cnt).Error; err != nil || cnt == 0 {
		utils.Error(c, http.StatusBadRequest, "customer not found", nil)
		return
	}

	var est models.Estimate

	const maxRetries = 3
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = config.DB.Transaction(func(tx *gorm.DB) error {
			lines, subtotal, grand, err := buildLines(tx, in.RateList, in.Lines, in.DiscountPercent)
			if err != nil {
				return err
			}

			var last models.Estimate
			if err := tx.
				Order("id DESC").
				Clauses(clauseUpdateLock()).
				Limit(1).
				Find(&last).Error; err != nil {
				return err
			}

			est = models.Estimate{
				EstimateNo:      utils.GenEstimateNo(last.ID+1, in.Date),
				CustomerID:      in.CustomerID,
				Date:            in.Date,
				Description:     in.Description,
				DiscountPercent: in.DiscountPercent,
				RateList:        in.RateList,
				Subtotal:        subtotal,
				GrandTotal:      grand,
				ShowSubtotal:    in.ShowSubtotal,
				Lines:           toEstimateLines(lines),
				CreatedByID:     uid,
			}
			return tx.Create(&est).Error
		})

		if lastErr == nil {
			c.JSON(http.StatusCreated, gin.H{"message": "estimate created", "data": est})
			return
		}
		if isUniqueViolation(lastErr) {
			continue
		}
		break
	}

	config.LogError("estimates", "CreateEstimate", "insert", lastErr)
	utils.Error(c, http.StatusBadRequest, "failed to create estimate", lastErr)
}

func GetAllEstimates(c *gin.Context) {
	q := config.DB.Preload("Customer").Preload("Lines").Order("id DESC")
	if cid := c.Query("customer_id"); cid != "" {
		q = q.Where("customer_id = ?", cid)
	}
	var rows []models.Estimate
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch estimates", err)
		return
	}
	utils.Success(c, "estimates", rows)
}

func GetEstimateByID(c *gin.Context) {
	var est models.Estimate
	if err := config.DB.Preload("Customer").Preload("Lines.Item").First(&est, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "estimate not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch estimate", err)
		return
	}
	utils.Success(c, "estimate", est)
}

func UpdateEstimate(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	var in EstimateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}

	var est models.Estimate
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clauseUpdateLock()).First(&est, uint(id64)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		lines, subtotal, grand, err := buildLines(tx, in.RateList, in.Lines, in.DiscountPercent)
		if err != nil {
			return err
		}

		if err := tx.Where("estimate_id = ?", est.ID).Delete(&models.EstimateLine{}).Error; err != nil {
			return err
		}
		estLines := toEstimateLines(lines)
		for i := range estLines {
			estLines[i].EstimateID = est.ID
		}
		if err := tx.Create(&estLines).Error; err != nil {
			return err
		}

		est.CustomerID = in.CustomerID
		est.Date = in.Date
		est.Description = in.Description
		est.DiscountPercent = in.DiscountPercent
		est.RateList = in.RateList
		est.ShowSubtotal = in.ShowSubtotal
		est.Subtotal = subtotal
		est.GrandTotal = grand
		if err := tx.Save(&est).Error; err != nil {
			return err
		}
		est.Lines = estLines
		return nil
	})

	switch {
	case err == nil:
		utils.Success(c, "estimate updated", est)
	case errors.Is(err, errNotFound):
		utils.Error(c, http.StatusNotFound, "estimate not found", nil)
	default:
		utils.Error(c, http.StatusBadRequest, "failed to update estimate", err)
	}
}

func DeleteEstimate(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Estimate{}, uint(id64))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNotFound
		}
		return tx.Where("estimate_id = ?", uint(id64)).Delete(&models.EstimateLine{}).Error
	})

	switch {
	case err == nil:
		utils.Success(c, "estimate deleted", nil)
	case errors.Is(err, errNotFound):
		utils.Error(c, http.StatusNotFound, "estimate not found", nil)
	default:
		utils.Error(c, http.StatusInternalServerError, "failed to delete estimate", err)
	}
}

// ConvertEstimateToSale copies an estimate into a new draft sale. Prices are
// carried over as entered on the estimate, not re-resolved.
func ConvertEstimateToSale(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	var est models.Estimate
	if err := config.DB.Preload("Lines").First(&est, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "estimate not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch estimate", err)
		return
	}

	var sale models.Sale

	const maxRetries = 3
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = config.DB.Transaction(func(tx *gorm.DB) error {
			var last models.Sale
			if err := tx.
				Order("sale_seq DESC").
				Clauses(clauseUpdateLock()).
				Limit(1).
				Find(&last).Error; err != nil {
				return err
			}
			nextSeq := uint(1)
			if last.ID != 0 {
				nextSeq = last.SaleSeq + 1
			}

			saleLines := make([]models.SaleLine, 0, len(est.Lines))
			for _, l := range est.Lines {
				saleLines = append(saleLines, models.SaleLine{
					ItemID:          l.ItemID,
					Name:            l.Name,
					Category:        l.Category,
					Color:           l.Color,
					Thickness:       l.Thickness,
					Qty:             l.Qty,
					UnitPrice:       l.UnitPrice,
					Feet:            l.Feet,
					DiscountPercent: l.DiscountPercent,
					LineNet:         l.LineNet,
				})
			}

			now := time.Now().UTC()
			sale = models.Sale{
				SaleNo:          utils.GenSaleNo(nextSeq, now),
				SaleSeq:         nextSeq,
				CustomerID:      est.CustomerID,
				SaleDate:        now,
				Description:     est.Description,
				DiscountPercent: est.DiscountPercent,
				RateList:        est.RateList,
				Status:          models.SaleDraft,
				Subtotal:        est.Subtotal,
				GrandTotal:      est.GrandTotal,
				ShowSubtotal:    est.ShowSubtotal,
				Lines:           saleLines,
				CreatedByID:     uid,
			}
			return tx.Create(&sale).Error
		})

		if lastErr == nil {
			c.JSON(http.StatusCreated, gin.H{"message": "estimate converted to draft sale", "data": sale})
			return
		}
		if isUniqueViolation(lastErr) {
			continue
		}
		break
	}

	config.LogError("estimates", "ConvertEstimateToSale", "insert", lastErr)
	utils.Error(c, http.StatusInternalServerError, "failed to convert estimate", lastErr)
}
