package payments

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Emicy963/ecommerce-backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}, &models.Payment{}))
	return db
}

func testOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()
	user := models.User{Username: "buyer", Email: "buyer@test.com", PasswordHash: "x", UserType: models.UserTypeBuyer}
	require.NoError(t, db.Create(&user).Error)

	order := models.Order{
		OrderNumber:     "ORD-TEST-0001",
		UserID:          user.ID,
		TotalAmount:     decimal.NewFromInt(45000),
		ShippingAddress: "Rua das Acácias, 123, Luanda",
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		CreatedAt:       time.Now(),
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func TestGenerateReference(t *testing.T) {
	sim := NewSimulator()

	ref := sim.GenerateReference()
	assert.True(t, strings.HasPrefix(ref, "REF-"))
	assert.Len(t, ref, len("REF-")+12)
	for _, ch := range ref[len("REF-"):] {
		assert.Contains(t, digits, string(ch))
	}
}

func TestProcessSuccess(t *testing.T) {
	db := testDB(t)
	order := testOrder(t, db)
	sim := &Simulator{SuccessRate: 1.0}

	result, err := sim.Process(db, order, models.PaymentMethodReference, "REF-123456789012")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.Payment.TransactionID, "TXN-"))
	assert.Equal(t, models.PaymentStateCompleted, result.Payment.Status)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, stored.Status)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)

	// Exactly one payment row per attempt, mirroring the order's state.
	var count int64
	db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&payment).Error)
	assert.True(t, payment.Amount.Equal(order.TotalAmount))
	assert.Equal(t, "REF-123456789012", payment.ReferenceNumber)
}

func TestProcessFailure(t *testing.T) {
	db := testDB(t)
	order := testOrder(t, db)
	sim := &Simulator{SuccessRate: 0.0}

	result, err := sim.Process(db, order, models.PaymentMethodCard, "")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, result.Payment.TransactionID)
	assert.Equal(t, models.PaymentStateFailed, result.Payment.Status)

	// A declined payment leaves the order pending; only payment_status moves.
	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)
}

func TestProcessRetryCreatesNewPayment(t *testing.T) {
	db := testDB(t)
	order := testOrder(t, db)

	failing := &Simulator{SuccessRate: 0.0}
	_, err := failing.Process(db, order, models.PaymentMethodMobile, "")
	require.NoError(t, err)

	succeeding := &Simulator{SuccessRate: 1.0}
	result, err := succeeding.Process(db, order, models.PaymentMethodMobile, "")
	require.NoError(t, err)
	assert.True(t, result.Success)

	var count int64
	db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 2, count)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, stored.Status)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
}
