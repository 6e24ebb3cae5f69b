package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cozinha360/pos-backend/models"
	"github.com/cozinha360/pos-backend/services"
	"github.com/cozinha360/pos-backend/utils"
)

type ReportController struct {
	DB      *gorm.DB
	Summary *services.SummaryService
}

func NewReportController(db *gorm.DB, summary *services.SummaryService) *ReportController {
	return &ReportController{DB: db, Summary: summary}
}

// sumPaidTotals -> SUM(total) dari query pesanan, 0 jika kosong.
func sumPaidTotals(query *gorm.DB, dest *float64) error {
	return query.Select("COALESCE(SUM(total), 0)").Row().Scan(dest)
}

// GetSalesStats mengambil statistik penjualan dari pesanan yang sudah lunas.
func (rc *ReportController) GetSalesStats(c *gin.Context) {
	// cek role
	roleInterface, _ := c.Get("role")
	if roleInterface != RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var stats struct {
		TotalSales    float64 `json:"total_sales"`
		OrderCount    int64   `json:"order_count"`
		DeliveryCount int64   `json:"delivery_count"`
		TableCount    int64   `json:"table_count"`
		AvgTicket     float64 `json:"avg_ticket"`
		ByPayment     struct {
			Cash float64 `json:"cash"`
			Pix  float64 `json:"pix"`
			Card float64 `json:"card"`
		} `json:"by_payment"`
	}

	if err := rc.DB.Model(&models.Order{}).
		Where("is_paid = ?", true).
		Count(&stats.OrderCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	rc.DB.Model(&models.Order{}).
		Where("is_paid = ? AND type = ?", true, models.OrderTypeDelivery).
		Count(&stats.DeliveryCount)
	rc.DB.Model(&models.Order{}).
		Where("is_paid = ? AND type = ?", true, models.OrderTypeTable).
		Count(&stats.TableCount)

	if err := sumPaidTotals(rc.DB.Model(&models.Order{}).
		Where("is_paid = ?", true), &stats.TotalSales); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, pm := range []struct {
		method models.PaymentMethod
		dest   *float64
	}{
		{models.PaymentCash, &stats.ByPayment.Cash},
		{models.PaymentPix, &stats.ByPayment.Pix},
		{models.PaymentCard, &stats.ByPayment.Card},
	} {
		if err := sumPaidTotals(rc.DB.Model(&models.Order{}).
			Where("is_paid = ? AND payment_method = ?", true, pm.method), pm.dest); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if stats.OrderCount > 0 {
		stats.AvgTicket = stats.TotalSales / float64(stats.OrderCount)
	}

	utils.RespondJSON(c, http.StatusOK, "Sales stats", stats)
}

// GetSalesHistory -> riwayat pesanan lunas dengan filter type, payment_method
// dan date (YYYY-MM-DD atas closed_at).
func (rc *ReportController) GetSalesHistory(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	query := rc.DB.Where("is_paid = ?", true)

	if orderType := c.Query("type"); orderType != "" && orderType != "ALL" {
		query = query.Where("type = ?", orderType)
	}
	if method := c.Query("payment_method"); method != "" && method != "ALL" {
		query = query.Where("payment_method = ?", method)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("DATE(closed_at) = ?", date)
	}

	var orders []models.Order
	if err := query.Order("closed_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Sales history", orders)
}

// GetDailySummary membuat ringkasan prosa untuk tim dari agregat penjualan.
// Kegagalan kolaborator AI tidak pernah menjadi error: fallback tetap 200.
func (rc *ReportController) GetDailySummary(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var orders []models.Order
	if err := rc.DB.Where("is_paid = ?", true).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := services.CollectSummaryStats(orders)
	summary := rc.Summary.DailySummary(c.Request.Context(), stats)

	utils.RespondJSON(c, http.StatusOK, "Daily summary", gin.H{
		"summary": summary,
		"stats":   stats,
	})
}
