package service

import (
	"errors"
	"time"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrPaymentAccessDenied     = errors.New("payment belongs to another user")
	ErrPaymentAlreadyCompleted = errors.New("order already has a completed payment")
	ErrOrderAlreadyDelivered   = errors.New("cannot pay for a delivered order")
	ErrPaymentNotPending       = errors.New("payment is not pending")
	ErrPaymentNotRefundable    = errors.New("only completed payments can be refunded")
	ErrInvalidPaymentStatus    = errors.New("invalid payment status")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
)

type PaymentService interface {
	Create(userID, orderID uint, method model.PaymentMethod) (*model.Payment, error)
	Get(paymentID, userID uint, isStaff bool) (*model.Payment, error)
	ListByUser(userID uint, filter repository.PaymentFilter) ([]model.Payment, error)
	ListAll(filter repository.PaymentFilter) ([]model.Payment, error)
	Process(paymentID, userID uint) (*model.Payment, error)
	Refund(paymentID uint) (*model.Payment, error)
	UpdateStatus(paymentID uint, status model.PaymentStatus) (*model.Payment, error)
	Stats() (*repository.PaymentStats, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	notifier    OrderNotifier
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	notifier OrderNotifier,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
	}
}

func validMethod(method model.PaymentMethod) bool {
	switch method {
	case model.PaymentMethodUPI, model.PaymentMethodCard, model.PaymentMethodCash:
		return true
	}
	return false
}

// Create opens a pending payment for the user's order. The amount always
// equals the order total, whatever the client sent.
func (s *paymentService) Create(userID, orderID uint, method model.PaymentMethod) (*model.Payment, error) {
	logger.Info("Creating payment", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
		"method":   method,
	})

	if !validMethod(method) {
		return nil, ErrInvalidPaymentMethod
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Payment rejected: order belongs to another user", map[string]interface{}{
			"order_id": orderID,
			"user_id":  userID,
		})
		return nil, ErrOrderAccessDenied
	}

	if order.Status == model.OrderStatusDelivered {
		logger.Warn("Payment rejected: order already delivered", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrOrderAlreadyDelivered
	}

	completed, err := s.paymentRepo.ExistsCompletedForOrder(orderID)
	if err != nil {
		return nil, err
	}
	if completed {
		logger.Warn("Payment rejected: order already paid", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrPaymentAlreadyCompleted
	}

	payment := &model.Payment{
		OrderID: orderID,
		Method:  method,
		Status:  model.PaymentStatusPending,
		Amount:  order.TotalPrice,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	logger.Info("Payment created", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   orderID,
		"amount":     payment.Amount,
	})
	return payment, nil
}

func (s *paymentService) Get(paymentID, userID uint, isStaff bool) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.Order.UserID != userID && !isStaff {
		logger.Warn("Payment access denied", map[string]interface{}{
			"payment_id": paymentID,
			"user_id":    userID,
		})
		return nil, ErrPaymentAccessDenied
	}
	return payment, nil
}

func (s *paymentService) ListByUser(userID uint, filter repository.PaymentFilter) ([]model.Payment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}
	if filter.Method != "" && !validMethod(filter.Method) {
		return nil, ErrInvalidPaymentMethod
	}
	return s.paymentRepo.FindByUserID(userID, filter)
}

func (s *paymentService) ListAll(filter repository.PaymentFilter) ([]model.Payment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}
	if filter.Method != "" && !validMethod(filter.Method) {
		return nil, ErrInvalidPaymentMethod
	}
	return s.paymentRepo.FindAll(filter)
}

// Process completes a pending payment (simulated gateway), stamps the
// paid time and moves the order to processing.
func (s *paymentService) Process(paymentID, userID uint) (*model.Payment, error) {
	logger.Info("Processing payment", map[string]interface{}{
		"payment_id": paymentID,
		"user_id":    userID,
	})

	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Order.UserID != userID {
		return nil, ErrPaymentAccessDenied
	}

	if !payment.Status.CanTransitionTo(model.PaymentStatusCompleted) {
		logger.Warn("Payment cannot be processed", map[string]interface{}{
			"payment_id": paymentID,
			"status":     payment.Status,
		})
		return nil, ErrPaymentNotPending
	}

	now := time.Now()
	payment.Status = model.PaymentStatusCompleted
	payment.PaidAt = &now
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(payment.OrderID, model.OrderStatusProcessing); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyOrderStatus(payment.Order.UserID, payment.OrderID, model.OrderStatusProcessing)
	}

	logger.Info("Payment completed", map[string]interface{}{
		"payment_id": paymentID,
		"order_id":   payment.OrderID,
		"amount":     payment.Amount,
	})
	return payment, nil
}

// Refund reverses a completed payment and cancels its order. Staff only.
func (s *paymentService) Refund(paymentID uint) (*model.Payment, error) {
	logger.Info("Refunding payment", map[string]interface{}{
		"payment_id": paymentID,
	})

	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if !payment.Status.CanTransitionTo(model.PaymentStatusRefunded) {
		logger.Warn("Payment cannot be refunded", map[string]interface{}{
			"payment_id": paymentID,
			"status":     payment.Status,
		})
		return nil, ErrPaymentNotRefundable
	}

	payment.Status = model.PaymentStatusRefunded
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(payment.OrderID, model.OrderStatusCancelled); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyOrderStatus(payment.Order.UserID, payment.OrderID, model.OrderStatusCancelled)
	}

	logger.Info("Payment refunded", map[string]interface{}{
		"payment_id": paymentID,
		"order_id":   payment.OrderID,
	})
	return payment, nil
}

// UpdateStatus is the staff path. Only enum membership is checked; the
// paid time is stamped when the payment first turns completed.
func (s *paymentService) UpdateStatus(paymentID uint, status model.PaymentStatus) (*model.Payment, error) {
	logger.Info("Updating payment status", map[string]interface{}{
		"payment_id": paymentID,
		"status":     status,
	})

	if !status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	enteringCompleted := status == model.PaymentStatusCompleted && payment.Status != model.PaymentStatusCompleted

	payment.Status = status
	if enteringCompleted && payment.PaidAt == nil {
		now := time.Now()
		payment.PaidAt = &now
	}
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	if enteringCompleted {
		if err := s.orderRepo.UpdateStatus(payment.OrderID, model.OrderStatusProcessing); err != nil {
			return nil, err
		}
		if s.notifier != nil {
			s.notifier.NotifyOrderStatus(payment.Order.UserID, payment.OrderID, model.OrderStatusProcessing)
		}
	}

	return payment, nil
}

func (s *paymentService) Stats() (*repository.PaymentStats, error) {
	return s.paymentRepo.Stats()
}
