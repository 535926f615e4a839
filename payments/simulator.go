package payments

import (
	"math/rand"
	"time"

	"github.com/Emicy963/ecommerce-backend/models"
	"gorm.io/gorm"
)

// DefaultSuccessRate stands in for a real gateway integration. Swap the
// whole Simulator for an actual provider client before going live.
const DefaultSuccessRate = 0.75

const (
	referencePrefix   = "REF-"
	transactionPrefix = "TXN-"
	referenceDigits   = 12
	transactionLength = 10

	digits   = "0123456789"
	alphanum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Result reports the outcome of a settlement attempt. A declined payment is
// a business outcome, not an error.
type Result struct {
	Payment *models.Payment `json:"payment"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
}

type Simulator struct {
	SuccessRate float64
}

func NewSimulator() *Simulator {
	return &Simulator{SuccessRate: DefaultSuccessRate}
}

// GenerateReference produces a payment reference for reference-based methods.
func (s *Simulator) GenerateReference() string {
	return referencePrefix + randomString(digits, referenceDigits)
}

func (s *Simulator) transactionID() string {
	return transactionPrefix + randomString(alphanum, transactionLength)
}

// Process records a settlement attempt for the order inside the caller's
// transaction. Exactly one Payment row is created per call. On success the
// payment completes and the order becomes paid/confirmed; on failure the
// payment and the order's payment status are marked failed and the order
// status is left untouched. No retry happens here — a new attempt is a new
// call with a fresh Payment.
func (s *Simulator) Process(tx *gorm.DB, order *models.Order, method models.PaymentMethod, referenceNumber string) (Result, error) {
	payment := models.Payment{
		OrderID:         order.ID,
		Method:          method,
		Amount:          order.TotalAmount,
		ReferenceNumber: referenceNumber,
		Status:          models.PaymentStatePending,
		CreatedAt:       time.Now(),
	}
	if err := tx.Create(&payment).Error; err != nil {
		return Result{}, err
	}

	if rand.Float64() < s.SuccessRate {
		payment.TransactionID = s.transactionID()
		payment.Status = models.PaymentStateCompleted
		if err := tx.Save(&payment).Error; err != nil {
			return Result{}, err
		}

		order.PaymentStatus = models.PaymentStatusPaid
		order.Status = models.OrderStatusConfirmed
		if err := tx.Save(order).Error; err != nil {
			return Result{}, err
		}

		return Result{Payment: &payment, Success: true, Message: "Payment completed successfully."}, nil
	}

	payment.Status = models.PaymentStateFailed
	if err := tx.Save(&payment).Error; err != nil {
		return Result{}, err
	}

	order.PaymentStatus = models.PaymentStatusFailed
	if err := tx.Save(order).Error; err != nil {
		return Result{}, err
	}

	return Result{Payment: &payment, Success: false, Message: "Payment was declined. Please try again."}, nil
}

func randomString(charset string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
