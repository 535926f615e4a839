package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses
	OrderStatusPending    OrderStatus = "pending"    // Order placed, payment not settled
	OrderStatusConfirmed  OrderStatus = "confirmed"  // Payment settled
	OrderStatusProcessing OrderStatus = "processing" // Seller preparing the order
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the items
	OrderStatusCancelled  OrderStatus = "cancelled"

	// Payment statuses on the order
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null" json:"order_number"` // Human-facing, distinct from the DB key
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"-"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	ShippingAddress string          `gorm:"not null" json:"shipping_address"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem snapshots the product name and price at checkout time.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index;not null" json:"order_id"`
	ProductID   uint            `gorm:"index;not null" json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
}

// ReviewableStatuses are the order states that count as a purchase when
// authorizing a product review.
var ReviewableStatuses = []OrderStatus{
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}
