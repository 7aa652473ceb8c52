package service

import (
	"testing"
	"time"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaymentServiceTest(t *testing.T) (*orderTestEnv, PaymentService, *recordingNotifier) {
	env, _ := setupOrderServiceTest(t)

	notifier := &recordingNotifier{}
	paymentRepo := repository.NewPaymentRepository(env.db)
	orderRepo := repository.NewOrderRepository(env.db)
	paymentService := NewPaymentService(paymentRepo, orderRepo, notifier)

	return env, paymentService, notifier
}

func TestPaymentService_Create(t *testing.T) {
	env, paymentService, _ := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 2)

	payment, err := paymentService.Create(env.user.ID, order.ID, model.PaymentMethodUPI)
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, payment.Status)
	assert.Nil(t, payment.PaidAt)

	// The amount always equals the order total
	assert.Equal(t, order.TotalPrice, payment.Amount)
}

func TestPaymentService_Create_Guards(t *testing.T) {
	env, paymentService, _ := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)

	_, err := paymentService.Create(env.user.ID, order.ID, model.PaymentMethod("cheque"))
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = paymentService.Create(env.user.ID, order.ID, model.PaymentMethod("netbanking"))
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	// Cash on collection is a valid method
	payment, err := paymentService.Create(env.user.ID, order.ID, model.PaymentMethodCash)
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentMethodCash, payment.Method)

	_, err = paymentService.Create(env.user.ID, 9999, model.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	other := &model.User{Username: "other", Email: "other@example.com", PasswordHash: "hash"}
	require.NoError(t, env.db.Create(other).Error)
	_, err = paymentService.Create(other.ID, order.ID, model.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrOrderAccessDenied)
}

func TestPaymentService_Create_DeliveredOrder(t *testing.T) {
	env, paymentService, _ := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)
	_, err := env.orderService.UpdateStatus(order.ID, model.OrderStatusDelivered)
	require.NoError(t, err)

	_, err = paymentService.Create(env.user.ID, order.ID, model.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrOrderAlreadyDelivered)
}

func TestPaymentService_Create_AlreadyPaid(t *testing.T) {
	env, paymentService, _ := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)

	payment, err := paymentService.Create(env.user.ID, order.ID, model.PaymentMethodUPI)
	require.NoError(t, err)
	_, err = paymentService.Process(payment.ID, env.user.ID)
	require.NoError(t, err)

	// A second payment for a paid order is refused
	_, err = paymentService.Create(env.user.ID, order.ID, model.PaymentMethodCard)
	assert.ErrorIs(t, err, ErrPaymentAlreadyCompleted)
}

func TestPaymentService_Process(t *testing.T) {
	env, paymentService, notifier := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)
	payment, err := paymentService.Create(env.user.ID, order.ID, model.PaymentMethodCard)
	require.NoError(t, err)

	processed, err := paymentService.Process(payment.ID, env.user.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, processed.Status)
	require.NotNil(t, processed.PaidAt)
	assert.Contains(t, notifier.events, model.OrderStatusProcessing)

	// Processing twice fails
	_, err = paymentService.Process(payment.ID, env.user.ID)
	assert.ErrorIs(t, err, ErrPaymentNotPending)
}

func TestPaymentService_Process_AccessDenied(t *testing.T) {
	env, paymentService, _ := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)
	payment, err := paymentService.Create(env.user.ID, order.ID, model.PaymentMethodCard)
	require.NoError(t, err)

	other := &model.User{Username: "other", Email: "other@example.com", PasswordHash: "hash"}
	require.NoError(t, env.db.Create(other).Error)

	_, err = paymentService.Process(payment.ID, other.ID)
	assert.ErrorIs(t, err, ErrPaymentAccessDenied)
}

func TestPaymentService_Refund(t *testing.T) {
	env, paymentService, _ := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)
	payment, err := paymentService.Create(env.user.ID, order.ID, model.PaymentMethodCard)
	require.NoError(t, err)

	// Pending payments cannot be refunded
	_, err = paymentService.Refund(payment.ID)
	assert.ErrorIs(t, err, ErrPaymentNotRefundable)

	_, err = paymentService.Process(payment.ID, env.user.ID)
	require.NoError(t, err)

	refunded, err := paymentService.Refund(payment.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRefunded, refunded.Status)

	// Refunding cancels the order
	got, err := env.orderService.Get(order.ID, env.user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)
}

func TestPaymentService_UpdateStatus(t *testing.T) {
	env, paymentService, notifier := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)
	payment, err := paymentService.Create(env.user.ID, order.ID, model.PaymentMethodCash)
	require.NoError(t, err)

	_, err = paymentService.UpdateStatus(payment.ID, model.PaymentStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)

	// Moving into completed stamps the paid time
	updated, err := paymentService.UpdateStatus(payment.ID, model.PaymentStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, updated.Status)
	assert.NotNil(t, updated.PaidAt)
	assert.Contains(t, notifier.events, model.OrderStatusProcessing)

	// A later staff edit keeps the original paid time
	paidAt := *updated.PaidAt
	updated, err = paymentService.UpdateStatus(payment.ID, model.PaymentStatusCompleted)
	assert.NoError(t, err)
	require.NotNil(t, updated.PaidAt)
	assert.WithinDuration(t, paidAt, *updated.PaidAt, time.Second)
}

func TestPaymentService_ListByUser(t *testing.T) {
	env, paymentService, _ := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)
	_, err := paymentService.Create(env.user.ID, order.ID, model.PaymentMethodUPI)
	require.NoError(t, err)

	payments, err := paymentService.ListByUser(env.user.ID, repository.PaymentFilter{})
	assert.NoError(t, err)
	assert.Len(t, payments, 1)

	payments, err = paymentService.ListByUser(env.user.ID, repository.PaymentFilter{
		Method: model.PaymentMethodCard,
	})
	assert.NoError(t, err)
	assert.Len(t, payments, 0)

	_, err = paymentService.ListByUser(env.user.ID, repository.PaymentFilter{
		Status: model.PaymentStatus("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestPaymentService_Stats(t *testing.T) {
	env, paymentService, _ := setupPaymentServiceTest(t)
	defer db.CleanupTestDB(env.db)

	first := env.placeOrder(t, 1)
	second := env.placeOrder(t, 1)

	kept, err := paymentService.Create(env.user.ID, first.ID, model.PaymentMethodUPI)
	require.NoError(t, err)
	_, err = paymentService.Process(kept.ID, env.user.ID)
	require.NoError(t, err)

	returned, err := paymentService.Create(env.user.ID, second.ID, model.PaymentMethodCard)
	require.NoError(t, err)
	_, err = paymentService.Process(returned.ID, env.user.ID)
	require.NoError(t, err)
	_, err = paymentService.Refund(returned.ID)
	require.NoError(t, err)

	stats, err := paymentService.Stats()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Refunded)
	assert.Equal(t, kept.Amount+returned.Amount, stats.Collected)
	assert.Equal(t, returned.Amount, stats.RefundedAmount)
	assert.Equal(t, kept.Amount, stats.NetRevenue)
	assert.Equal(t, 100.0, stats.SuccessRate)
}
