package service

import (
	"errors"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAccessDenied  = errors.New("order belongs to another user")
	ErrCartEmpty          = errors.New("cannot create order from an empty cart")
	ErrAddressNotOwned    = errors.New("address does not belong to the user")
	ErrOrderNotCancelable = errors.New("order can no longer be cancelled")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// OrderNotifier receives order status events. The websocket hub
// implements it; a nil notifier disables notifications.
type OrderNotifier interface {
	NotifyOrderStatus(userID, orderID uint, status model.OrderStatus)
}

type CreateOrderInput struct {
	CartID            uint
	ShippingAddressID uint
	BillingAddressID  uint
}

// OrderTracking is the lightweight tracking view of an order
type OrderTracking struct {
	OrderID   uint              `json:"order_id"`
	Status    model.OrderStatus `json:"status"`
	UpdatedAt string            `json:"updated_at"`
}

type OrderService interface {
	Create(userID uint, input CreateOrderInput) (*model.Order, error)
	Get(orderID, userID uint, isStaff bool) (*model.Order, error)
	ListByUser(userID uint, status model.OrderStatus) ([]model.Order, error)
	ListAll(status model.OrderStatus) ([]model.Order, error)
	Cancel(orderID, userID uint) (*model.Order, error)
	UpdateStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
	Tracking(orderID, userID uint, isStaff bool) (*OrderTracking, error)
	Stats() (*repository.OrderStats, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
	notifier    OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	notifier OrderNotifier,
) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		notifier:    notifier,
	}
}

func (s *orderService) notify(userID, orderID uint, status model.OrderStatus) {
	if s.notifier != nil {
		s.notifier.NotifyOrderStatus(userID, orderID, status)
	}
}

// Create places an order from the user's cart. The total is computed
// once from the current accessory prices and stock is decremented per
// line inside a single transaction. The cart is left intact.
func (s *orderService) Create(userID uint, input CreateOrderInput) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"user_id":             userID,
		"cart_id":             input.CartID,
		"shipping_address_id": input.ShippingAddressID,
		"billing_address_id":  input.BillingAddressID,
	})

	cart, err := s.cartRepo.FindByID(input.CartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	if cart.UserID != userID {
		logger.Warn("Order rejected: cart belongs to another user", map[string]interface{}{
			"cart_id":  input.CartID,
			"user_id":  userID,
			"owner_id": cart.UserID,
		})
		return nil, ErrCartAccessDenied
	}
	if cart.IsEmpty() {
		logger.Warn("Order rejected: cart is empty", map[string]interface{}{
			"cart_id": input.CartID,
			"user_id": userID,
		})
		return nil, ErrCartEmpty
	}

	for _, addressID := range []uint{input.ShippingAddressID, input.BillingAddressID} {
		address, err := s.addressRepo.FindByID(addressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAddressNotFound
			}
			return nil, err
		}
		if address.UserID != userID {
			logger.Warn("Order rejected: address belongs to another user", map[string]interface{}{
				"address_id": addressID,
				"user_id":    userID,
			})
			return nil, ErrAddressNotOwned
		}
	}

	order := &model.Order{
		UserID:            userID,
		CartID:            cart.ID,
		TotalPrice:        cart.TotalPrice(),
		Status:            model.OrderStatusProcessing,
		ShippingAddressID: input.ShippingAddressID,
		BillingAddressID:  input.BillingAddressID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range cart.Items {
			var accessory model.Accessory
			if err := tx.First(&accessory, item.AccessoryID).Error; err != nil {
				return err
			}
			if accessory.Stock < item.Quantity {
				logger.Warn("Order rejected: insufficient stock", map[string]interface{}{
					"accessory_id": accessory.ID,
					"requested":    item.Quantity,
					"stock":        accessory.Stock,
				})
				return ErrInsufficientStock
			}
			err := tx.Model(&model.Accessory{}).
				Where("id = ?", accessory.ID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(order).Error
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientStock) {
			logger.Error("Failed to create order", err, map[string]interface{}{
				"user_id": userID,
				"cart_id": input.CartID,
			})
		}
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":    order.ID,
		"user_id":     userID,
		"total_price": order.TotalPrice,
	})

	s.notify(userID, order.ID, order.Status)
	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) Get(orderID, userID uint, isStaff bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != userID && !isStaff {
		logger.Warn("Order access denied", map[string]interface{}{
			"order_id": orderID,
			"user_id":  userID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *orderService) ListByUser(userID uint, status model.OrderStatus) ([]model.Order, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	return s.orderRepo.FindByUserID(userID, status)
}

func (s *orderService) ListAll(status model.OrderStatus) ([]model.Order, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	return s.orderRepo.FindAll(status)
}

// Cancel lets the owner cancel an order that is still processing
func (s *orderService) Cancel(orderID, userID uint) (*model.Order, error) {
	logger.Info("Cancelling order", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}

	if !order.Status.CanTransitionTo(model.OrderStatusCancelled) {
		logger.Warn("Order cannot be cancelled", map[string]interface{}{
			"order_id": orderID,
			"status":   order.Status,
		})
		return nil, ErrOrderNotCancelable
	}

	order.Status = model.OrderStatusCancelled
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id": orderID,
	})

	s.notify(order.UserID, order.ID, order.Status)
	return order, nil
}

// UpdateStatus is the staff path. Any valid status may be set, the
// customer lifecycle rules do not apply here.
func (s *orderService) UpdateStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	s.notify(order.UserID, order.ID, order.Status)
	return order, nil
}

func (s *orderService) Tracking(orderID, userID uint, isStaff bool) (*OrderTracking, error) {
	order, err := s.Get(orderID, userID, isStaff)
	if err != nil {
		return nil, err
	}
	return &OrderTracking{
		OrderID:   order.ID,
		Status:    order.Status,
		UpdatedAt: order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

func (s *orderService) Stats() (*repository.OrderStats, error) {
	return s.orderRepo.Stats()
}
