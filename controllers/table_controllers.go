package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cozinha360/pos-backend/config"
	"github.com/cozinha360/pos-backend/models"
	"github.com/cozinha360/pos-backend/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// ProjectTables menurunkan status seluruh meja (1..N) dari himpunan pesanan
// yang belum dibayar. Status meja tidak pernah disimpan: selalu dihitung
// ulang di setiap pembacaan.
func ProjectTables(db *gorm.DB) ([]models.Table, error) {
	var occupiedIDs []int
	if err := db.Model(&models.Order{}).
		Where("is_paid = ? AND table_id IS NOT NULL", false).
		Pluck("table_id", &occupiedIDs).Error; err != nil {
		return nil, err
	}

	occupied := make(map[int]bool, len(occupiedIDs))
	for _, id := range occupiedIDs {
		occupied[id] = true
	}

	count := config.TableCount()
	tables := make([]models.Table, 0, count)
	for id := 1; id <= count; id++ {
		status := models.TableStatusFree
		if occupied[id] {
			status = models.TableStatusOccupied
		}
		tables = append(tables, models.Table{ID: id, Status: status})
	}
	return tables, nil
}

// GetAllTables -> proyeksi okupansi seluruh meja.
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := ProjectTables(tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableOrder -> pesanan terbuka (belum dibayar) milik satu meja; 404 jika
// meja kosong. Dipakai waiter untuk melanjutkan pesanan meja yang terisi.
func (tc *TableController) GetTableOrder(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := tc.DB.
		Where("table_id = ? AND is_paid = ?", tableID, false).
		First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Open order for table", order)
}
