package routes

import (
	adminControllers "github.com/Emicy963/ecommerce-backend/controllers/admin"
	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the seller approval workflow. Admin accounts
// only.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireUserType("admin"))
	{
		adminGroup.GET("/sellers/pending/", adminControllers.ListPendingSellers(db))
		adminGroup.POST("/sellers/approve/", adminControllers.ApproveSeller(db))
		adminGroup.POST("/sellers/reject/", adminControllers.RejectSeller(db))
	}
}
