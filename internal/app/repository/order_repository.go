package repository

import (
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// OrderStats are the counters for the admin stats endpoint
type OrderStats struct {
	Total      int64   `json:"total"`
	Processing int64   `json:"processing"`
	Shipped    int64   `json:"shipped"`
	Delivered  int64   `json:"delivered"`
	Cancelled  int64   `json:"cancelled"`
	Revenue    float64 `json:"revenue"`
}

type OrderRepository interface {
	Create(order *model.Order) error
	FindAll(status model.OrderStatus) ([]model.Order, error)
	FindByID(id uint) (*model.Order, error)
	FindByUserID(userID uint, status model.OrderStatus) ([]model.Order, error)
	Update(order *model.Order) error
	UpdateStatus(id uint, status model.OrderStatus) error
	Stats() (*OrderStats, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_id":     order.UserID,
		"cart_id":     order.CartID,
		"total_price": order.TotalPrice,
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id": order.UserID,
			"cart_id": order.CartID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
	})
	return nil
}

func (r *orderRepository) FindAll(status model.OrderStatus) ([]model.Order, error) {
	query := r.db.Preload("Cart.Items.Accessory").
		Preload("ShippingAddress").
		Preload("BillingAddress").
		Preload("Payments")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []model.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Cart.Items.Accessory").
		Preload("ShippingAddress").
		Preload("BillingAddress").
		Preload("Payments").
		First(&order, id).Error
	if err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint, status model.OrderStatus) ([]model.Order, error) {
	query := r.db.Preload("Cart.Items.Accessory").
		Preload("ShippingAddress").
		Preload("BillingAddress").
		Preload("Payments").
		Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []model.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	logger.Debug("Updating order in database", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})

	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	err := r.db.Model(&model.Order{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		logger.Error("Failed to update order status in database", err, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return err
	}
	return nil
}

func (r *orderRepository) Stats() (*OrderStats, error) {
	stats := &OrderStats{}

	if err := r.db.Model(&model.Order{}).Count(&stats.Total).Error; err != nil {
		logger.Error("Failed to count orders", err, nil)
		return nil, err
	}

	counts := []struct {
		status model.OrderStatus
		dest   *int64
	}{
		{model.OrderStatusProcessing, &stats.Processing},
		{model.OrderStatusShipped, &stats.Shipped},
		{model.OrderStatusDelivered, &stats.Delivered},
		{model.OrderStatusCancelled, &stats.Cancelled},
	}
	for _, c := range counts {
		if err := r.db.Model(&model.Order{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	row := r.db.Model(&model.Order{}).
		Where("status = ?", model.OrderStatusDelivered).
		Select("COALESCE(SUM(total_price), 0)").
		Row()
	if err := row.Scan(&stats.Revenue); err != nil {
		logger.Error("Failed to compute order revenue", err, nil)
		return nil, err
	}

	return stats, nil
}
