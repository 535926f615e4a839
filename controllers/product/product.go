package productControllers

import (
	"errors"
	"net/http"

	"github.com/Emicy963/ecommerce-backend/cache"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// GET /api/v1/products/
// Featured products of active stores; ?store=<slug> narrows to one store.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.
			Joins("JOIN stores ON stores.id = products.store_id").
			Where("stores.is_active = ?", true).
			Preload("Category")

		if storeSlug := c.Query("store"); storeSlug != "" {
			query = query.Where("stores.slug = ?", storeSlug)
		} else {
			query = query.Where("products.featured = ?", true)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// GET /api/v1/products/categories/
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /api/v1/products/search/?query=
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("query")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
			return
		}

		pattern := "%" + q + "%"
		var products []models.Product
		if err := db.
			Joins("JOIN stores ON stores.id = products.store_id").
			Where("stores.is_active = ?", true).
			Where("products.name LIKE ? OR products.description LIKE ?", pattern, pattern).
			Preload("Category").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// GET /api/v1/products/:slug/
// Detail reads go through Redis when a client is configured; the store stays
// the source of truth.
func GetProductBySlug(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		productSlug := c.Param("slug")
		cacheKey := "product:" + productSlug

		var cached models.Product
		if cache.GetJSON(c.Request.Context(), rdb, cacheKey, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}

		var product models.Product
		if err := db.Preload("Category").Where("slug = ?", productSlug).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		cache.SetJSON(c.Request.Context(), rdb, cacheKey, product)
		c.JSON(http.StatusOK, product)
	}
}
