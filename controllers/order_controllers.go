package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cozinha360/pos-backend/config"
	"github.com/cozinha360/pos-backend/events"
	"github.com/cozinha360/pos-backend/models"
	"github.com/cozinha360/pos-backend/services"
	"github.com/cozinha360/pos-backend/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

func cartConfig() services.CartConfig {
	return services.CartConfig{
		FlavorCategory:        config.FlavorCategory(),
		NoObservationCategory: config.NoObservationCategory(),
	}
}

type itemRequest struct {
	ProductID   string   `json:"product_id" binding:"required"`
	Quantity    int      `json:"quantity"`
	Size        string   `json:"size"`
	Flavors     []string `json:"flavors"`
	Crust       string   `json:"crust"`
	Addons      []string `json:"addons"`
	Observation string   `json:"observation"`
}

// orderRequest membawa pesanan lengkap yang diinginkan, bukan delta.
// distance_km dan rate_per_km berupa teks ketikan pengguna; nilai tak valid
// dibaca 0.
type orderRequest struct {
	Type          models.OrderType      `json:"type" binding:"required"`
	TableID       *int                  `json:"table_id"`
	Customer      *models.Customer      `json:"customer"`
	DistanceKm    string                `json:"distance_km"`
	RatePerKm     string                `json:"rate_per_km"`
	Pickup        bool                  `json:"pickup"`
	PaymentMethod *models.PaymentMethod `json:"payment_method"`
	Items         []itemRequest         `json:"items"`
}

// assembleItems menjalankan customizer untuk setiap baris permintaan. Harga
// dan opsi diambil dari katalog saat ini lalu dibekukan ke dalam item;
// produk yang sudah hilang dari katalog dilewati.
func (oc *OrderController) assembleItems(req orderRequest) []models.OrderItem {
	cart := services.NewCart(cartConfig())

	for _, ir := range req.Items {
		var product models.Product
		if err := oc.DB.First(&product, "id = ?", ir.ProductID).Error; err != nil {
			continue
		}

		qty := ir.Quantity
		if qty < 1 {
			qty = 1
		}

		if !cart.RequiresCustomization(product) {
			// Item polos: penggabungan kuantitas dengan item identik
			for i := 0; i < qty; i++ {
				cart.Add(product)
			}
			continue
		}

		cart.Add(product)
		if ir.Size != "" {
			cart.SelectSize(ir.Size)
		}

		// Rasa diterapkan lewat toggle berurutan. Rasa bawaan (nama produk)
		// dilepas segera setelah rasa pengganti pertama masuk, supaya
		// permintaan yang penuh sampai batas ukuran tidak kehilangan rasa
		// terakhirnya. Pilihan di atas batas ukuran gugur.
		if len(ir.Flavors) > 0 {
			desired := make(map[string]bool, len(ir.Flavors))
			for _, f := range ir.Flavors {
				desired[f] = true
			}
			seedRemoved := desired[product.Name]
			for _, f := range ir.Flavors {
				if f == product.Name {
					continue
				}
				cart.ToggleFlavor(f)
				if !seedRemoved {
					cart.ToggleFlavor(product.Name)
					seedRemoved = true
				}
			}
		}

		if ir.Crust != "" {
			if opt, ok := product.FindCrust(ir.Crust); ok {
				cart.ToggleCrust(opt)
			}
		}
		for _, name := range ir.Addons {
			if opt, ok := product.FindAddon(name); ok {
				cart.ToggleAddon(opt)
			}
		}

		cart.SetDraftQuantity(qty)
		if _, err := cart.Confirm(ir.Observation); err != nil {
			utils.ErrorLogger.Printf("confirm customization: %v", err)
		}
	}

	return cart.Items()
}

func (oc *OrderController) buildFromRequest(req orderRequest, existing *models.Order) (models.Order, error) {
	rate := config.DefaultRatePerKm()
	if req.RatePerKm != "" {
		rate = services.ParseAmount(req.RatePerKm)
	}

	draft := services.OrderDraft{
		Type:          req.Type,
		TableID:       req.TableID,
		Customer:      req.Customer,
		DistanceKm:    services.ParseAmount(req.DistanceKm),
		RatePerKm:     rate,
		Pickup:        req.Pickup,
		Items:         oc.assembleItems(req),
		PaymentMethod: req.PaymentMethod,
		Existing:      existing,
	}
	return services.BuildOrder(draft, time.Now())
}

// tableHasOpenOrder -> meja sudah punya pesanan belum dibayar selain
// excludeID (kosongkan untuk pembuatan pesanan baru).
func (oc *OrderController) tableHasOpenOrder(tableID int, excludeID string) bool {
	query := oc.DB.Model(&models.Order{}).
		Where("table_id = ? AND is_paid = ?", tableID, false)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var open int64
	query.Count(&open)
	return open > 0
}

func respondBuildError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyOrder),
		errors.Is(err, models.ErrMissingTable),
		errors.Is(err, models.ErrMissingCustomer),
		errors.Is(err, models.ErrInvalidPayment):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// GetAllOrders -> seluruh pesanan.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Order("created_at asc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 pesanan.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder merakit dan menyimpan pesanan baru (status=SENT). Satu meja
// hanya boleh punya satu pesanan yang belum dibayar.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Type == models.OrderTypeTable && req.TableID != nil &&
		oc.tableHasOpenOrder(*req.TableID, "") {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("table %d already has an open order", *req.TableID))
		return
	}

	order, err := oc.buildFromRequest(req, nil)
	if err != nil {
		respondBuildError(c, err)
		return
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.broadcastOrderChange(order)
	utils.InfoLogger.Printf("Order created: %s (type=%s, total=%s)",
		order.ID, order.Type, utils.FormatCurrencyBRL(order.Total))
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrder mengganti isi pesanan (item, pelanggan, ongkir) dengan state
// yang dikirim client. id/createdAt/status dipertahankan; pesanan lunas tidak
// bisa diubah.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	var existing models.Order
	if err := oc.DB.First(&existing, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if existing.IsPaid {
		utils.RespondError(c, http.StatusConflict, models.ErrOrderPaid)
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Pindah meja tunduk pada aturan yang sama dengan pembuatan: satu meja
	// satu pesanan terbuka.
	if req.Type == models.OrderTypeTable && req.TableID != nil &&
		oc.tableHasOpenOrder(*req.TableID, existing.ID) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("table %d already has an open order", *req.TableID))
		return
	}

	order, err := oc.buildFromRequest(req, &existing)
	if err != nil {
		respondBuildError(c, err)
		return
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.broadcastOrderChange(order)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder membatalkan pesanan sebelum dibayar dan menghapusnya permanen.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.IsPaid {
		utils.RespondError(c, http.StatusConflict, models.ErrOrderPaid)
		return
	}

	if err := oc.DB.Delete(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderDelete(order.ID)
	oc.broadcastTables()
	utils.InfoLogger.Printf("Order cancelled: %s", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}

/*
========================================
 LIFECYCLE
========================================
*/

// StartPreparing -> dapur mulai memasak (SENT => PREPARING).
func (oc *OrderController) StartPreparing(c *gin.Context) {
	oc.transition(c, "Order preparing", func(o *models.Order) error {
		return o.StartPreparing()
	})
}

// MarkReady -> dapur menandai pesanan siap (PREPARING => READY).
func (oc *OrderController) MarkReady(c *gin.Context) {
	oc.transition(c, "Order ready", func(o *models.Order) error {
		return o.MarkReady()
	})
}

// PayOrder -> kasir menutup pesanan dari status unpaid manapun.
func (oc *OrderController) PayOrder(c *gin.Context) {
	var body struct {
		PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := order.Pay(body.PaymentMethod, time.Now()); err != nil {
		if errors.Is(err, models.ErrInvalidPayment) {
			utils.RespondError(c, http.StatusBadRequest, err)
		} else {
			utils.RespondError(c, http.StatusConflict, err)
		}
		return
	}

	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.broadcastOrderChange(order)
	events.BroadcastStaffNotification(fmt.Sprintf("Order %s paid (%s)", order.ID, body.PaymentMethod))
	utils.InfoLogger.Printf("Order paid: %s via %s, total=%s",
		order.ID, body.PaymentMethod, utils.FormatCurrencyBRL(order.Total))
	utils.RespondJSON(c, http.StatusOK, "Order paid", order)
}

func (oc *OrderController) transition(c *gin.Context, message string, apply func(*models.Order) error) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := apply(&order); err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusOK, message, order)
}

/*
========================================
 QUEUES
========================================
*/

// GetKitchenOrders -> antrian dapur: SENT dan PREPARING saja, terlama dulu.
func (oc *OrderController) GetKitchenOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.
		Where("status IN ?", []models.OrderStatus{models.OrderStatusSent, models.OrderStatusPreparing}).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen orders", orders)
}

// GetCashierOrders -> seluruh pesanan yang belum dibayar, status apapun.
func (oc *OrderController) GetCashierOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.
		Where("is_paid = ?", false).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cashier orders", orders)
}

// broadcastOrderChange menyiarkan pesanan plus proyeksi meja terbaru (status
// meja diturunkan dari pesanan unpaid, jadi tiap mutasi pesanan bisa
// mengubahnya).
func (oc *OrderController) broadcastOrderChange(order models.Order) {
	events.BroadcastOrderUpdate(order)
	if order.Type == models.OrderTypeTable {
		oc.broadcastTables()
	}
}

func (oc *OrderController) broadcastTables() {
	tables, err := ProjectTables(oc.DB)
	if err != nil {
		utils.ErrorLogger.Printf("project tables: %v", err)
		return
	}
	events.BroadcastTableUpdate(tables)
}
