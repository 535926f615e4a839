package wishlistControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ToggleInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// POST /api/v1/wishlist/add/
// Toggle: adds the product if missing, removes it if already wishlisted.
func ToggleWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input ToggleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}

		var item models.Wishlist
		err := db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&item).Error
		if err == nil {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove wishlist item"})
				return
			}
			c.JSON(http.StatusNoContent, gin.H{"message": "Product removed from wishlist."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		item = models.Wishlist{
			UserID:    userID,
			ProductID: product.ID,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add wishlist item"})
			return
		}
		item.Product = product

		c.JSON(http.StatusCreated, item)
	}
}

// GET /api/v1/wishlist/
func GetUserWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var items []models.Wishlist
		if err := db.Preload("Product").Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// DELETE /api/v1/wishlist/:id/
func DeleteWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Wishlist{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wishlist item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found."})
			return
		}

		c.JSON(http.StatusNoContent, gin.H{"message": "Wishlist item deleted"})
	}
}
