package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleInput struct {
	CustomerID      uint            `json:"customer_id" binding:"required"`
	SaleDate        time.Time       `json:"sale_date"`
	Description     string          `json:"description"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	RateList        string          `json:"rate_list"`
	ShowSubtotal    bool            `json:"show_subtotal"`
	Lines           []LineInput     `json:"lines" binding:"required,min=1"`
}

// CreateSale persists a new draft sale. The total is always recomputed from
// the lines, never taken from the client.
func CreateSale(c *gin.Context) {
	var in SaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}

	if in.SaleDate.IsZero() {
		in.SaleDate = time.Now().UTC()
	}

	var cnt int64
	if err := config.DB.Model(&models.Customer{}).Where("id = ?", in.CustomerID).Count(&cnt).Error; err != nil || cnt == 0 {
		utils.Error(c, http.StatusBadRequest, "customer not found", nil)
		return
	}

	var sale models.Sale

	const maxRetries = 3
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = config.DB.Transaction(func(tx *gorm.DB) error {
			lines, subtotal, grand, err := buildLines(tx, in.RateList, in.Lines, in.DiscountPercent)
			if err != nil {
				return err
			}

			// lock the latest sale row to hand out the next sequence
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

			sale = models.Sale{
				SaleNo:          utils.GenSaleNo(nextSeq, in.SaleDate),
				SaleSeq:         nextSeq,
				CustomerID:      in.CustomerID,
				SaleDate:        in.SaleDate,
				Description:     in.Description,
				DiscountPercent: in.DiscountPercent,
				RateList:        in.RateList,
				Status:          models.SaleDraft,
				Subtotal:        subtotal,
				GrandTotal:      grand,
				ShowSubtotal:    in.ShowSubtotal,
				Lines:           lines,
				CreatedByID:     uid,
			}
			return tx.Create(&sale).Error
		})

		if lastErr == nil {
			c.JSON(http.StatusCreated, gin.H{"message": "sale created (draft)", "data": sale})
			return
		}
		if isUniqueViolation(lastErr) {
			continue
		}
		break
	}

	config.LogError("sales", "CreateSale", "insert", lastErr)
	utils.Error(c, http.StatusBadRequest, "failed to create sale", lastErr)
}

func GetAllSales(c *gin.Context) {
	q := config.DB.Preload("Customer").Preload("Lines").Order("id DESC")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if cid := c.Query("customer_id"); cid != "" {
		q = q.Where("customer_id = ?", cid)
	}
	var rows []models.Sale
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch sales", err)
		return
	}
	utils.Success(c, "sales", rows)
}

func GetSaleByID(c *gin.Context) {
	var sale models.Sale
	if err := config.DB.Preload("Customer").Preload("Lines.Item").First(&sale, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "sale not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch sale", err)
		return
	}
	utils.Success(c, "sale", sale)
}

// UpdateSale replaces the lines of a draft sale and recomputes its totals.
// Posted sales are immutable until unposted; the guard runs inside the DB
// transaction, not just at the edit surface.
func UpdateSale(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	var in SaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if in.SaleDate.IsZero() {
		in.SaleDate = time.Now().UTC()
	}

	var cnt int64
	if err := config.DB.Model(&models.Customer{}).Where("id = ?", in.CustomerID).Count(&cnt).Error; err != nil || cnt == 0 {
		utils.Error(c, http.StatusBadRequest, "customer not found", nil)
		return
	}

	var sale models.Sale
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clauseUpdateLock()).First(&sale, uint(id64)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if sale.Status != models.SaleDraft {
			return errBadStatus
		}

		lines, subtotal, grand, err := buildLines(tx, in.RateList, in.Lines, in.DiscountPercent)
		if err != nil {
			return err
		}

		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleLine{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].SaleID = sale.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}

		sale.CustomerID = in.CustomerID
		sale.SaleDate = in.SaleDate
		sale.Description = in.Description
		sale.DiscountPercent = in.DiscountPercent
		sale.RateList = in.RateList
		sale.ShowSubtotal = in.ShowSubtotal
		sale.Subtotal = subtotal
		sale.GrandTotal = grand
		if err := tx.Save(&sale).Error; err != nil {
			return err
		}
		sale.Lines = lines
		return nil
	})

	switch {
	case err == nil:
		utils.Success(c, "sale updated", sale)
	case errors.Is(err, errNotFound):
		utils.Error(c, http.StatusNotFound, "sale not found", nil)
	case errors.Is(err, errBadStatus):
		utils.Error(c, http.StatusConflict, "posted sales cannot be edited, unpost first", nil)
	default:
		utils.Error(c, http.StatusBadRequest, "failed to update sale", err)
	}
}

// PostSale moves a draft sale to posted and appends exactly one debit ledger
// entry carrying the sale reference. The unique index on transactions.sale_id
// plus the row lock make a double post impossible.
func PostSale(c *gin.Context) {
	id := c.Param("id")

	var sale models.Sale
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clauseUpdateLock()).Preload("Customer").First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if sale.Status != models.SaleDraft {
			return errBadStatus
		}

		res := tx.Model(&models.Sale{}).
			Where("id = ? AND status = ?", sale.ID, models.SaleDraft).
			Update("status", models.SalePosted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyProcessed
		}

		customerName := ""
		if sale.Customer != nil {
			customerName = sale.Customer.Name
		}
		entry := models.Transaction{
			Description: "Sale " + sale.SaleNo + " - " + customerName,
			Amount:      sale.GrandTotal,
			Type:        models.TxDebit,
			Category:    models.CategorySale,
			CustomerID:  &sale.CustomerID,
			SaleID:      &sale.ID,
			TxDate:      sale.SaleDate,
		}
		if err := tx.Create(&entry).Error; err != nil {
			if isUniqueViolation(err) {
				return errAlreadyProcessed
			}
			return err
		}
		sale.Status = models.SalePosted
		return nil
	})

	switch {
	case err == nil:
		utils.Success(c, "sale posted", sale)
	case errors.Is(err, errNotFound):
		utils.Error(c, http.StatusNotFound, "sale not found", nil)
	case errors.Is(err, errBadStatus):
		utils.Error(c, http.StatusConflict, "only draft sales can be posted", nil)
	case errors.Is(err, errAlreadyProcessed):
		utils.Error(c, http.StatusConflict, "sale already posted", nil)
	default:
		config.LogError("sales", "PostSale", "transaction", err)
		utils.Error(c, http.StatusInternalServerError, "failed to post sale", err)
	}
}

// UnpostSale removes the sale's ledger entry and returns it to draft.
func UnpostSale(c *gin.Context) {
	id := c.Param("id")

	var sale models.Sale
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clauseUpdateLock()).First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if sale.Status != models.SalePosted {
			return errBadStatus
		}

		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Sale{}).
			Where("id = ? AND status = ?", sale.ID, models.SalePosted).
			Update("status", models.SaleDraft)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyProcessed
		}
		sale.Status = models.SaleDraft
		return nil
	})

	switch {
	case err == nil:
		utils.Success(c, "sale unposted", sale)
	case errors.Is(err, errNotFound):
		utils.Error(c, http.StatusNotFound, "sale not found", nil)
	case errors.Is(err, errBadStatus):
		utils.Error(c, http.StatusConflict, "only posted sales can be unposted", nil)
	case errors.Is(err, errAlreadyProcessed):
		utils.Error(c, http.StatusConflict, "sale already processed", nil)
	default:
		config.LogError("sales", "UnpostSale", "transaction", err)
		utils.Error(c, http.StatusInternalServerError, "failed to unpost sale", err)
	}
}

// DeleteSale removes the sale and, when it was posted, its ledger entry in
// the same DB transaction, so the ledger can never be left with an orphan.
func DeleteSale(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Clauses(clauseUpdateLock()).First(&sale, uint(id64)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		if sale.Status == models.SalePosted {
			if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.Transaction{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})

	switch {
	case err == nil:
		utils.Success(c, "sale deleted", nil)
	case errors.Is(err, errNotFound):
		utils.Error(c, http.StatusNotFound, "sale not found", nil)
	default:
		config.LogError("sales", "DeleteSale", "transaction", err)
		utils.Error(c, http.StatusInternalServerError, "failed to delete sale", err)
	}
}
