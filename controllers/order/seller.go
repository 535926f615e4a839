package orderControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Emicy963/ecommerce-backend/events"
	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// Statuses a seller may set. No forward-only enforcement: the observed
// system lets sellers move between these freely.
func mapSellerStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	default:
		return "", errors.New("status must be processing, shipped or delivered")
	}
}

func sellerStore(db *gorm.DB, c *gin.Context) (*models.Store, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	var store models.Store
	if err := db.Where("owner_id = ?", userID).First(&store).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have a store."})
		return nil, false
	}
	return &store, true
}

// GET /api/v1/orders/seller/orders/
// Orders that contain at least one product from the seller's store.
func GetSellerOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sellerStore(db, c)
		if !ok {
			return
		}

		var orders []models.Order
		if err := db.
			Distinct("orders.*").
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("products.store_id = ?", store.ID).
			Preload("Items").
			Order("orders.created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// PUT /api/v1/orders/seller/:order_number/status/
func UpdateOrderStatus(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sellerStore(db, c)
		if !ok {
			return
		}
		orderNumber := c.Param("order_number")

		var input UpdateOrderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := mapSellerStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		// The order must contain at least one product from this store.
		var count int64
		if err := db.Model(&models.OrderItem{}).
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("order_items.order_id = ? AND products.store_id = ?", order.ID, store.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify order ownership"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your store."})
			return
		}

		order.Status = newStatus
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		go publishOrderEvent(pub, "order.status_changed", order)
		go broadcastOrderUpdate(order)

		c.JSON(http.StatusOK, order)
	}
}
