package storeControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CreateStoreInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateStoreInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// POST /api/v1/auth/store/create/
// Only an admin-approved seller may open a store, and only one.
func CreateStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if user.UserType != models.UserTypeSeller {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only sellers can create a store."})
			return
		}
		if !user.IsApprovedSeller {
			c.JSON(http.StatusForbidden, gin.H{"error": "Your seller account is awaiting approval."})
			return
		}

		var existing models.Store
		if err := db.Where("owner_id = ?", userID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "You already own a store."})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check store"})
			return
		}

		var input CreateStoreInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store := models.Store{
			OwnerID:     userID,
			Name:        input.Name,
			Slug:        uniqueStoreSlug(db, input.Name),
			Description: input.Description,
			IsActive:    true,
			CreatedAt:   time.Now(),
		}
		if err := db.Create(&store).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
			return
		}

		c.JSON(http.StatusCreated, store)
	}
}

// GET /api/v1/auth/store/
func GetStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var store models.Store
		if err := db.Where("owner_id = ?", userID).First(&store).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "You don't have a store."})
			return
		}

		c.JSON(http.StatusOK, store)
	}
}

// PUT /api/v1/auth/store/
func UpdateStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var store models.Store
		if err := db.Where("owner_id = ?", userID).First(&store).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "You don't have a store."})
			return
		}

		var input UpdateStoreInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if len(updates) > 0 {
			if err := db.Model(&store).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
				return
			}
		}

		c.JSON(http.StatusOK, store)
	}
}

func uniqueStoreSlug(db *gorm.DB, name string) string {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		db.Model(&models.Store{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}
