package routes

import (
	authControllers "github.com/Emicy963/ecommerce-backend/controllers/auth"
	storeControllers "github.com/Emicy963/ecommerce-backend/controllers/store"
	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers registration, login, profile and store
// management endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register/", authControllers.Register(db))
		authGroup.POST("/token/", authControllers.ObtainToken(db))

		protected := authGroup.Group("")
		protected.Use(middleware.ValidateToken)
		{
			protected.GET("/profile/", authControllers.GetProfile(db))
			protected.PUT("/profile/", authControllers.UpdateProfile(db))

			protected.POST("/store/create/", storeControllers.CreateStore(db))
			protected.GET("/store/", storeControllers.GetStore(db))
			protected.PUT("/store/", storeControllers.UpdateStore(db))
		}
	}
}
