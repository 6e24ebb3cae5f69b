package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cozinha360/pos-backend/controllers"
	"github.com/cozinha360/pos-backend/models"
	"github.com/cozinha360/pos-backend/services"
	"github.com/cozinha360/pos-backend/utils"
)

func setupTestDBForReports(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		panic(err)
	}
	return db
}

func setupReportRouter(db *gorm.DB, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Set("name", "Boss")
		c.Set("role", role)
	})
	reportCtrl := controllers.NewReportController(db, services.NewSummaryService())
	router.GET("/reports/stats", reportCtrl.GetSalesStats)
	router.GET("/reports/history", reportCtrl.GetSalesHistory)
	router.GET("/reports/summary", reportCtrl.GetDailySummary)
	return router
}

func seedPaidOrder(db *gorm.DB, id string, orderType models.OrderType, method models.PaymentMethod, total float64, closedAt time.Time) {
	tableID := 1
	order := models.Order{
		ID:            id,
		Type:          orderType,
		Status:        models.OrderStatusFinished,
		Total:         total,
		PaymentMethod: &method,
		IsPaid:        true,
		ClosedAt:      &closedAt,
	}
	if orderType == models.OrderTypeTable {
		order.TableID = &tableID
	}
	db.Create(&order)
}

func TestSalesStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReports("reports_stats")
	router := setupReportRouter(db, "admin")

	now := time.Now()
	seedPaidOrder(db, "o1", models.OrderTypeTable, models.PaymentCash, 50.00, now)
	seedPaidOrder(db, "o2", models.OrderTypeDelivery, models.PaymentPix, 80.00, now)
	seedPaidOrder(db, "o3", models.OrderTypeTable, models.PaymentCash, 30.00, now)
	// Pesanan belum lunas tidak masuk laporan
	db.Create(&models.Order{ID: "o4", Type: models.OrderTypeTable, Status: models.OrderStatusSent, Total: 99.00})

	w := doJSON(t, router, "GET", "/reports/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
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
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 160.00, resp.Data.TotalSales)
	assert.Equal(t, int64(3), resp.Data.OrderCount)
	assert.Equal(t, int64(1), resp.Data.DeliveryCount)
	assert.Equal(t, int64(2), resp.Data.TableCount)
	assert.InDelta(t, 53.33, resp.Data.AvgTicket, 0.01)
	assert.Equal(t, 80.00, resp.Data.ByPayment.Cash)
	assert.Equal(t, 80.00, resp.Data.ByPayment.Pix)
	assert.Equal(t, 0.00, resp.Data.ByPayment.Card)
}

// Kegagalan query statistik dijawab 500, tidak diam-diam mengembalikan nol.
func TestSalesStatsDBError(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReports("reports_stats_error")
	router := setupReportRouter(db, "admin")

	assert.NoError(t, db.Migrator().DropTable(&models.Order{}))

	w := doJSON(t, router, "GET", "/reports/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSalesHistoryFilters(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReports("reports_history")
	router := setupReportRouter(db, "admin")

	now := time.Now()
	seedPaidOrder(db, "o1", models.OrderTypeTable, models.PaymentCash, 50.00, now)
	seedPaidOrder(db, "o2", models.OrderTypeDelivery, models.PaymentPix, 80.00, now)

	var resp struct {
		Data []models.Order `json:"data"`
	}

	w := doJSON(t, router, "GET", "/reports/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)

	w = doJSON(t, router, "GET", "/reports/history?payment_method=PIX", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "o2", resp.Data[0].ID)

	w = doJSON(t, router, "GET", "/reports/history?type=TABLE", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "o1", resp.Data[0].ID)

	// Filter ALL = tanpa filter
	w = doJSON(t, router, "GET", "/reports/history?type=ALL&payment_method=ALL", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestReportsRequireAdmin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReports("reports_forbidden")
	router := setupReportRouter(db, "cashier")

	for _, url := range []string{"/reports/stats", "/reports/history", "/reports/summary"} {
		w := doJSON(t, router, "GET", url, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, url)
	}
}

// Tanpa API key ringkasan jatuh ke teks fallback, tetap 200.
func TestDailySummaryFallback(t *testing.T) {
	utils.InitLogger()
	t.Setenv("GEMINI_API_KEY", "")

	db := setupTestDBForReports("reports_summary")
	router := setupReportRouter(db, "admin")
	seedPaidOrder(db, "o1", models.OrderTypeTable, models.PaymentCash, 50.00, time.Now())

	w := doJSON(t, router, "GET", "/reports/summary", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Summary string `json:"summary"`
			Stats   struct {
				SalesTotal float64 `json:"sales_total"`
				OrderCount int     `json:"order_count"`
			} `json:"stats"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, services.SummaryFallback, resp.Data.Summary)
	assert.Equal(t, 50.00, resp.Data.Stats.SalesTotal)
	assert.Equal(t, 1, resp.Data.Stats.OrderCount)
}
