package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Image         string          `json:"image"`
	CategoryID    *uint           `json:"category_id"`
	InStock       *bool           `json:"in_stock"`
	StockQuantity int             `json:"stock_quantity"`
	Featured      bool            `json:"featured"`
}

type UpdateProductInput struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Image         *string          `json:"image"`
	CategoryID    *uint            `json:"category_id"`
	InStock       *bool            `json:"in_stock"`
	StockQuantity *int             `json:"stock_quantity"`
	Featured      *bool            `json:"featured"`
}

// ownStore resolves the seller's store or answers with the right error.
func ownStore(db *gorm.DB, c *gin.Context) (*models.Store, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	userType, _ := c.Get("user_type")
	if userType != string(models.UserTypeSeller) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only sellers can manage products."})
		return nil, false
	}

	var store models.Store
	if err := db.Where("owner_id = ?", userID).First(&store).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You don't have a store."})
		return nil, false
	}
	return &store, true
}

// POST /api/v1/products/seller/create/
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := ownStore(db, c)
		if !ok {
			return
		}

		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
		}

		inStock := true
		if input.InStock != nil {
			inStock = *input.InStock
		}

		product := models.Product{
			StoreID:       store.ID,
			CategoryID:    input.CategoryID,
			Name:          input.Name,
			Slug:          uniqueProductSlug(db, input.Name),
			Description:   input.Description,
			Image:         input.Image,
			Price:         input.Price,
			InStock:       inStock,
			StockQuantity: input.StockQuantity,
			Featured:      input.Featured,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// PUT /api/v1/products/seller/:slug/
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := ownStore(db, c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.Where("slug = ? AND store_id = ?", c.Param("slug"), store.ID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Image != nil {
			updates["image"] = *input.Image
		}
		if input.CategoryID != nil {
			updates["category_id"] = *input.CategoryID
		}
		if input.InStock != nil {
			updates["in_stock"] = *input.InStock
		}
		if input.StockQuantity != nil {
			updates["stock_quantity"] = *input.StockQuantity
		}
		if input.Featured != nil {
			updates["featured"] = *input.Featured
		}

		if len(updates) > 0 {
			updates["updated_at"] = time.Now()
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, product)
	}
}

// DELETE /api/v1/products/seller/:slug/
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := ownStore(db, c)
		if !ok {
			return
		}

		result := db.Where("slug = ? AND store_id = ?", c.Param("slug"), store.ID).Delete(&models.Product{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

func uniqueProductSlug(db *gorm.DB, name string) string {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		db.Unscoped().Model(&models.Product{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}
