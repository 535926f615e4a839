package routes

import (
	cartControllers "github.com/Emicy963/ecommerce-backend/controllers/cart"
	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	{
		// Guest-accessible endpoints
		cart.POST("/create/", cartControllers.CreateCart(db))
		cart.POST("/add/", cartControllers.AddItem(db))

		protected := cart.Group("")
		protected.Use(middleware.ValidateToken)
		{
			protected.PUT("/update/", cartControllers.UpdateItem(db))
			protected.DELETE("/items/:item_id/", cartControllers.DeleteItem(db))
			protected.GET("/user/", cartControllers.GetUserCart(db))
			protected.POST("/create-user/", cartControllers.CreateUserCart(db))
			protected.POST("/merge/", cartControllers.MergeCarts(db))
		}

		cart.GET("/:cart_code/", cartControllers.GetCart(db))
	}
}
