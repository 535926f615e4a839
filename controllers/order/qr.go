package orderControllers

import (
	"net/http"

	"github.com/Emicy963/ecommerce-backend/middleware"
	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// GET /api/v1/orders/:order_number/payment/qr
// Renders the latest payment reference of the order as a QR code, so
// reference payments can be completed at a kiosk or banking app.
func PaymentReferenceQR(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orderNumber := c.Param("order_number")

		var order models.Order
		if err := db.Where("order_number = ? AND user_id = ?", orderNumber, userID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found."})
			return
		}

		var payment models.Payment
		if err := db.Where("order_id = ? AND reference_number <> ''", order.ID).
			Order("created_at DESC").
			First(&payment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No payment reference for this order."})
			return
		}

		png, err := qrcode.Encode(payment.ReferenceNumber, qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}

		c.Data(http.StatusOK, "image/png", png)
	}
}
