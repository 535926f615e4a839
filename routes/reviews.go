package routes

import (
	reviewControllers "github.com/Emicy963/ecommerce-backend/controllers/review"
	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupReviewRoutes(api *gin.RouterGroup, db *gorm.DB) {
	reviews := api.Group("/reviews")
	reviews.Use(middleware.ValidateToken)
	{
		reviews.POST("/add/", reviewControllers.AddReview(db))
		reviews.GET("/user/", reviewControllers.GetUserReviews(db))
		reviews.GET("/product/:product_id/", reviewControllers.GetProductReviews(db))
		reviews.GET("/store/", reviewControllers.GetStoreReviews(db))
		reviews.PUT("/:id/", reviewControllers.UpdateReview(db))
		reviews.DELETE("/:id/", reviewControllers.DeleteReview(db))
	}
}
