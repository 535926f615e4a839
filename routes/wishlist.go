package routes

import (
	wishlistControllers "github.com/Emicy963/ecommerce-backend/controllers/wishlist"
	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupWishlistRoutes(api *gin.RouterGroup, db *gorm.DB) {
	wishlist := api.Group("/wishlist")
	wishlist.Use(middleware.ValidateToken)
	{
		wishlist.GET("/", wishlistControllers.GetUserWishlist(db))
		wishlist.POST("/add/", wishlistControllers.ToggleWishlistItem(db))
		wishlist.DELETE("/:id/", wishlistControllers.DeleteWishlistItem(db))
	}
}
