package reviewControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddReviewInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type UpdateReviewInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type productRating struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// hasPurchased reports whether the user has an order item for the product on
// an order that reached at least the confirmed state. This is the only
// cross-component invariant the order workflow upholds for reviews.
func hasPurchased(db *gorm.DB, userID, productID uint) (bool, error) {
	var count int64
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ? AND orders.user_id = ?", productID, userID).
		Where("orders.status IN ?", models.ReviewableStatuses).
		Count(&count).Error
	return count > 0, err
}

// POST /api/v1/reviews/add/
func AddReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID and rating are required"})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}

		var existing models.Review
		if err := db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product."})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing review"})
			return
		}

		purchased, err := hasPurchased(db, userID, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify purchase"})
			return
		}
		if !purchased {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You can only review products you have purchased."})
			return
		}

		review := models.Review{
			UserID:    userID,
			ProductID: product.ID,
			Rating:    input.Rating,
			Comment:   input.Comment,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := db.Create(&review).Error; err != nil {
			// The unique index catches racing duplicates.
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product."})
			return
		}

		c.JSON(http.StatusCreated, review)
	}
}

// PUT /api/v1/reviews/:id/
func UpdateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var review models.Review
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&review).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found."})
			return
		}

		var input UpdateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Rating != nil {
			if *input.Rating < 1 || *input.Rating > 5 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
				return
			}
			review.Rating = *input.Rating
		}
		if input.Comment != nil {
			review.Comment = *input.Comment
		}
		review.UpdatedAt = time.Now()

		if err := db.Save(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}

		c.JSON(http.StatusOK, review)
	}
}

// DELETE /api/v1/reviews/:id/
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Review{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found."})
			return
		}

		c.JSON(http.StatusNoContent, gin.H{"message": "Review deleted"})
	}
}

// GET /api/v1/reviews/product/:product_id/
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("product_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}

		var reviews []models.Review
		if err := db.Where("product_id = ?", product.ID).Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		var rating productRating
		row := db.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_reviews").
			Where("product_id = ?", product.ID).
			Row()
		if err := row.Scan(&rating.AverageRating, &rating.TotalReviews); err != nil {
			rating = productRating{}
		}

		c.JSON(http.StatusOK, gin.H{"reviews": reviews, "rating": rating})
	}
}

// GET /api/v1/reviews/user/
func GetUserReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var reviews []models.Review
		if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		c.JSON(http.StatusOK, reviews)
	}
}

// GET /api/v1/reviews/store/
// All reviews of the seller's own products.
func GetStoreReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var store models.Store
		if err := db.Where("owner_id = ?", userID).First(&store).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You don't have a store."})
			return
		}

		var reviews []models.Review
		if err := db.
			Joins("JOIN products ON products.id = reviews.product_id").
			Where("products.store_id = ?", store.ID).
			Order("reviews.created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		c.JSON(http.StatusOK, reviews)
	}
}
