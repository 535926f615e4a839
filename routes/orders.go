package routes

import (
	orderControllers "github.com/Emicy963/ecommerce-backend/controllers/order"
	"github.com/Emicy963/ecommerce-backend/events"
	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/payments"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, sim *payments.Simulator, pub events.Publisher) {
	orders := api.Group("/orders")
	{
		// Live status feed; no auth, mirrors the public nature of the feed
		orders.GET("/ws/", orderControllers.OrderWebSocketHandler)

		protected := orders.Group("")
		protected.Use(middleware.ValidateToken)
		{
			protected.POST("/create/", orderControllers.CreateOrder(db, sim, pub))
			protected.GET("/", orderControllers.GetUserOrders(db))

			sellerGroup := protected.Group("/seller")
			sellerGroup.Use(middleware.RequireUserType("seller"))
			{
				sellerGroup.GET("/orders/", orderControllers.GetSellerOrders(db))
				sellerGroup.PUT("/:order_number/status/", orderControllers.UpdateOrderStatus(db, pub))
			}

			protected.GET("/:order_number/", orderControllers.GetOrderByNumber(db))
			protected.GET("/:order_number/payment/qr", orderControllers.PaymentReferenceQR(db))
		}
	}
}
