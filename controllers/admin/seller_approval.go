package adminControllers

import (
	"net/http"

	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SellerApprovalInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

// GET /api/v1/admin/sellers/pending/
func ListPendingSellers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.User
		if err := db.
			Where("user_type = ? AND is_approved_seller = ?", models.UserTypeSeller, false).
			Order("created_at ASC").
			Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending sellers"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

// POST /api/v1/admin/sellers/approve/
func ApproveSeller(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SellerApprovalInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		var user models.User
		if err := db.First(&user, input.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if user.UserType != models.UserTypeSeller {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is not a seller"})
			return
		}

		if err := db.Model(&user).Update("is_approved_seller", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve seller"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Seller approved"})
	}
}

// POST /api/v1/admin/sellers/reject/
func RejectSeller(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SellerApprovalInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		var user models.User
		if err := db.First(&user, input.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if err := db.Model(&user).Update("is_approved_seller", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject seller"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Seller rejected"})
	}
}
