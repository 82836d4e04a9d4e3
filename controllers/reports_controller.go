package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"arco-factory-manager/config"
	"arco-factory-manager/service"
	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
)

func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "from must be YYYY-MM-DD", nil)
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "to must be YYYY-MM-DD", nil)
		return time.Time{}, time.Time{}, false
	}
	// inclusive end of day
	return from, to.AddDate(0, 0, 1).Add(-time.Second), true
}

// ReportSales renders the sales report over an explicit selection:
// ?ids=1,2,3
func ReportSales(c *gin.Context) {
	raw := strings.Split(c.Query("ids"), ",")
	ids := make([]uint, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "ids must be a comma-separated list of sale ids", nil)
			return
		}
		ids = append(ids, uint(n))
	}
	if len(ids) == 0 {
		utils.Error(c, http.StatusBadRequest, "at least one sale id is required", nil)
		return
	}

	report, err := service.NewReports(config.DB).SalesByIDs(c.Request.Context(), ids)
	if err != nil {
		config.LogError("reports", "ReportSales", "query", err)
		utils.Error(c, http.StatusInternalServerError, "failed to build sales report", err)
		return
	}
	utils.Success(c, "sales report", report)
}

func ReportCollativeSales(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	rows, err := service.NewReports(config.DB).CollativeSales(c.Request.Context(), from, to)
	if err != nil {
		config.LogError("reports", "ReportCollativeSales", "query", err)
		utils.Error(c, http.StatusInternalServerError, "failed to build collative report", err)
		return
	}
	utils.Success(c, "collative sales report", rows)
}

func ReportTopItems(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := service.NewReports(config.DB).TopSellingItems(c.Request.Context(), from, to, limit)
	if err != nil {
		config.LogError("reports", "ReportTopItems", "query", err)
		utils.Error(c, http.StatusInternalServerError, "failed to build top items report", err)
		return
	}
	utils.Success(c, "top selling items", rows)
}
