package orderControllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Emicy963/ecommerce-backend/events"
	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/Emicy963/ecommerce-backend/payments"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateOrderInput struct {
	CartCode        string `json:"cart_code" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
	ReferenceNumber string `json:"reference_number"`
}

func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch strings.ToLower(method) {
	case string(models.PaymentMethodReference):
		return models.PaymentMethodReference, nil
	case string(models.PaymentMethodMobile):
		return models.PaymentMethodMobile, nil
	case string(models.PaymentMethodCard):
		return models.PaymentMethodCard, nil
	default:
		return "", errors.New("invalid payment method")
	}
}

// newOrderNumber builds the human-facing order identifier.
// Example: ORD-20250829-7F3A21BC
func newOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
}

// POST /api/v1/orders/create/
// Converts a cart into an order snapshot, runs the payment attempt and
// consumes the cart, all in one transaction. A declined payment still
// creates the order (pending/failed); only validation failures roll back.
func CreateOrder(db *gorm.DB, sim *payments.Simulator, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		method, err := mapPaymentMethod(input.PaymentMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items.Product").Where("cart_code = ?", input.CartCode).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if cart.UserID != nil && *cart.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cart belongs to another user."})
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot checkout an empty cart."})
			return
		}

		referenceNumber := input.ReferenceNumber
		if method == models.PaymentMethodReference && referenceNumber == "" {
			referenceNumber = sim.GenerateReference()
		}

		var order models.Order
		var result payments.Result

		err = db.Transaction(func(tx *gorm.DB) error {
			total := decimal.Zero
			var orderItems []models.OrderItem
			for _, item := range cart.Items {
				price := item.Product.Price
				total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
				orderItems = append(orderItems, models.OrderItem{
					ProductID:   item.ProductID,
					ProductName: item.Product.Name,
					Price:       price,
					Quantity:    item.Quantity,
				})
			}

			order = models.Order{
				OrderNumber:     newOrderNumber(),
				UserID:          userID,
				Items:           orderItems,
				TotalAmount:     total,
				ShippingAddress: input.ShippingAddress,
				Status:          models.OrderStatusPending,
				PaymentStatus:   models.PaymentStatusPending,
				CreatedAt:       time.Now(),
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			var procErr error
			result, procErr = sim.Process(tx, &order, method, referenceNumber)
			if procErr != nil {
				return procErr
			}

			// The cart is consumed by the conversion.
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cart).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		go publishOrderEvent(pub, "order.created", order)
		go broadcastOrderUpdate(order)

		c.JSON(http.StatusCreated, gin.H{
			"order":   order,
			"payment": result,
		})
	}
}

// GET /api/v1/orders/
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/v1/orders/:order_number/
func GetOrderByNumber(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orderNumber := c.Param("order_number")

		var order models.Order
		if err := db.
			Preload("Items").
			Where("order_number = ? AND user_id = ?", orderNumber, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func publishOrderEvent(pub events.Publisher, routingKey string, order models.Order) {
	evt := map[string]any{
		"order_number":   order.OrderNumber,
		"user_id":        order.UserID,
		"total_amount":   order.TotalAmount,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
	}
	if err := pub.Publish(context.Background(), routingKey, evt); err != nil {
		log.Printf("Failed to publish %s event: %v", routingKey, err)
	}
}
