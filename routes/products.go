package routes

import (
	productControllers "github.com/Emicy963/ecommerce-backend/controllers/product"
	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, rdb *redis.Client) {
	products := api.Group("/products")
	{
		products.GET("/", productControllers.GetProducts(db))
		products.GET("/categories/", productControllers.GetCategories(db))
		products.GET("/search/", productControllers.SearchProducts(db))

		sellerGroup := products.Group("/seller")
		sellerGroup.Use(middleware.ValidateToken)
		{
			sellerGroup.POST("/create/", productControllers.CreateProduct(db))
			sellerGroup.GET("/export-excel/", productControllers.ExportProductsToExcel(db))
			sellerGroup.PUT("/:slug/", productControllers.UpdateProduct(db))
			sellerGroup.DELETE("/:slug/", productControllers.DeleteProduct(db))
		}

		products.GET("/:slug/", productControllers.GetProductBySlug(db, rdb))
	}
}
