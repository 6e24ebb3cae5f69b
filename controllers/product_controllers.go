package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cozinha360/pos-backend/events"
	"github.com/cozinha360/pos-backend/models"
	"github.com/cozinha360/pos-backend/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

func validateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("product category is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("product price must not be negative")
	}
	for _, opt := range p.AvailableCrusts {
		if opt.Price < 0 {
			return fmt.Errorf("crust price must not be negative")
		}
	}
	for _, opt := range p.AvailableAddons {
		if opt.Price < 0 {
			return fmt.Errorf("addon price must not be negative")
		}
	}
	return nil
}

// GetAllProducts -> daftar produk katalog, terurut nama.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Order("name asc").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetProductByID -> detail 1 produk
func (pc *ProductController) GetProductByID(c *gin.Context) {
	var product models.Product
	if err := pc.DB.First(&product, "id = ?", c.Param("product_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// GetCategories mengembalikan himpunan kategori yang diturunkan dari produk
// yang ada. Kategori tidak dideklarasikan di mana pun: admin membuat kategori
// baru cukup dengan menamainya pada sebuah produk.
func (pc *ProductController) GetCategories(c *gin.Context) {
	var categories []string
	if err := pc.DB.Model(&models.Product{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// UpsertProduct -> insert jika id belum ada, replace jika sudah.
func (pc *ProductController) UpsertProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := validateProduct(&product); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastProductUpdate(product)

	utils.InfoLogger.Printf("Product upserted: %s (%s)", product.Name, product.ID)
	utils.RespondJSON(c, http.StatusCreated, "Product saved", product)
}

// DeleteProduct menghapus produk dari katalog. Pesanan lama tidak terpengaruh
// karena item pesanan menyimpan salinan harga, bukan referensi produk.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productID := c.Param("product_id")

	var product models.Product
	if err := pc.DB.First(&product, "id = ?", productID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := pc.DB.Delete(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastProductUpdate(product)

	utils.InfoLogger.Printf("Product deleted: %s", productID)
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": productID})
}
