package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string
type PaymentState string

const (
	PaymentMethodReference PaymentMethod = "reference"
	PaymentMethodMobile    PaymentMethod = "mobile"
	PaymentMethodCard      PaymentMethod = "card"

	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStateFailed    PaymentState = "failed"
)

// Payment is a single settlement attempt against an order's total. An order
// may accumulate several attempts; the latest one drives Order.PaymentStatus.
type Payment struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         uint            `gorm:"index;not null" json:"order_id"`
	Order           Order           `gorm:"foreignKey:OrderID" json:"-"`
	Method          PaymentMethod   `gorm:"type:VARCHAR(10);not null" json:"method"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	ReferenceNumber string          `json:"reference_number"`
	TransactionID   string          `json:"transaction_id"`
	Status          PaymentState    `gorm:"type:VARCHAR(10);default:'pending'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
