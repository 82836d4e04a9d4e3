package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"arco-factory-manager/config"
	"arco-factory-manager/models"
	"arco-factory-manager/service"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LabourInput struct {
	Name          string          `json:"name" binding:"required"`
	Phone         string          `json:"phone"`
	MonthlySalary decimal.Decimal `json:"monthly_salary" binding:"required"`
	JoinedAt      time.Time       `json:"joined_at"`
	IsActive      *bool           `json:"is_active"`
}

func GetAllLabour(c *gin.Context) {
	var rows []models.Labour
	if err := config.DB.Order("name ASC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch labour", err)
		return
	}
	utils.Success(c, "labour", rows)
}

func CreateLabour(c *gin.Context) {
	var in LabourInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if !in.MonthlySalary.IsPositive() {
		utils.Error(c, http.StatusBadRequest, "monthly salary must be greater than zero", nil)
		return
	}
	if in.JoinedAt.IsZero() {
		in.JoinedAt = time.Now().UTC()
	}

	row := models.Labour{
		Name:          in.Name,
		Phone:         in.Phone,
		MonthlySalary: in.MonthlySalary,
		JoinedAt:      in.JoinedAt,
		IsActive:      true,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to create labour", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "labour created", "data": row})
}

func UpdateLabour(c *gin.Context) {
	var row models.Labour
	if err := config.DB.First(&row, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "labour not found", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to fetch labour", err)
		return
	}

	var in LabourInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if !in.MonthlySalary.IsPositive() {
		utils.Error(c, http.StatusBadRequest, "monthly salary must be greater than zero", nil)
		return
	}

	row.Name = in.Name
	row.Phone = in.Phone
	row.MonthlySalary = in.MonthlySalary
	if !in.JoinedAt.IsZero() {
		row.JoinedAt = in.JoinedAt
	}
	if in.IsActive != nil {
		row.IsActive = *in.IsActive
	}

	if err := config.DB.Save(&row).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to update labour", err)
		return
	}
	utils.Success(c, "labour updated", row)
}

func DeleteLabour(c *gin.Context) {
	res := config.DB.Delete(&models.Labour{}, c.Param("id"))
	if res.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to delete labour", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "labour not found", nil)
		return
	}
	utils.Success(c, "labour deleted", nil)
}

type GenerateSalaryInput struct {
	LabourID    uint            `json:"labour_id" binding:"required"`
	Month       int             `json:"month" binding:"required,min=1,max=12"`
	Year        int             `json:"year" binding:"required,min=2000"`
	WorkingDays int             `json:"working_days" binding:"required,min=1,max=31"`
	DaysWorked  int             `json:"days_worked" binding:"min=0,max=31"`
	Overtime    decimal.Decimal `json:"overtime"`
}

// GenerateSalary computes the payable for one labourer and month, records the
// payment and posts the reserved Salary ledger entry in one DB transaction.
// The composite unique index rejects a second generation for the same
// labourer/month/year.
func GenerateSalary(c *gin.Context) {
	var in GenerateSalaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if in.Overtime.IsNegative() {
		utils.Error(c, http.StatusBadRequest, "overtime must not be negative", nil)
		return
	}

	var payment models.SalaryPayment
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var labour models.Labour
		if err := tx.First(&labour, in.LabourID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		payable, err := service.SalaryPayable(labour.MonthlySalary, in.WorkingDays, in.DaysWorked, in.Overtime)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		payment = models.SalaryPayment{
			LabourID:    labour.ID,
			Month:       in.Month,
			Year:        in.Year,
			WorkingDays: in.WorkingDays,
			DaysWorked:  in.DaysWorked,
			Overtime:    in.Overtime,
			Payable:     payable,
			GeneratedAt: now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			if isUniqueViolation(err) {
				return errAlreadyProcessed
			}
			return err
		}

		entry := models.Transaction{
			Description: fmt.Sprintf("Salary %s %02d/%d", labour.Name, in.Month, in.Year),
			Amount:      payable,
			Type:        models.TxCredit,
			Category:    models.CategorySalary,
			TxDate:      now,
		}
		return tx.Create(&entry).Error
	})

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "salary generated", "data": payment})
	case errors.Is(err, errNotFound):
		utils.Error(c, http.StatusNotFound, "labour not found", nil)
	case errors.Is(err, errAlreadyProcessed):
		utils.Error(c, http.StatusConflict, "salary already generated for this month", nil)
	case errors.Is(err, service.ErrBadWorkingDays), errors.Is(err, service.ErrBadDaysWorked):
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
	default:
		config.LogError("payroll", "GenerateSalary", "transaction", err)
		utils.Error(c, http.StatusInternalServerError, "failed to generate salary", err)
	}
}

func GetSalaryPayments(c *gin.Context) {
	q := config.DB.Preload("Labour").Order("year DESC, month DESC, id DESC")
	if m := c.Query("month"); m != "" {
		q = q.Where("month = ?", m)
	}
	if y := c.Query("year"); y != "" {
		q = q.Where("year = ?", y)
	}
	if lid := c.Query("labour_id"); lid != "" {
		q = q.Where("labour_id = ?", lid)
	}
	var rows []models.SalaryPayment
	if err := q.Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch salary payments", err)
		return
	}
	utils.Success(c, "salary payments", rows)
}
