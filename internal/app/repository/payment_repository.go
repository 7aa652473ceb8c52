package repository

import (
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// PaymentFilter narrows payment listings. Empty fields are ignored.
type PaymentFilter struct {
	Status model.PaymentStatus
	Method model.PaymentMethod
}

// PaymentStats are the counters for the admin stats endpoint
type PaymentStats struct {
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	Completed      int64   `json:"completed"`
	Failed         int64   `json:"failed"`
	Refunded       int64   `json:"refunded"`
	Collected      float64 `json:"collected"`
	RefundedAmount float64 `json:"refunded_amount"`
	NetRevenue     float64 `json:"net_revenue"`
	SuccessRate    float64 `json:"success_rate"`
}

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindAll(filter PaymentFilter) ([]model.Payment, error)
	FindByID(id uint) (*model.Payment, error)
	FindByUserID(userID uint, filter PaymentFilter) ([]model.Payment, error)
	Update(payment *model.Payment) error
	ExistsCompletedForOrder(orderID uint) (bool, error)
	Stats() (*PaymentStats, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	logger.Debug("Creating payment in database", map[string]interface{}{
		"order_id": payment.OrderID,
		"method":   payment.Method,
		"amount":   payment.Amount,
	})

	if err := r.db.Create(payment).Error; err != nil {
		logger.Error("Failed to create payment in database", err, map[string]interface{}{
			"order_id": payment.OrderID,
			"method":   payment.Method,
		})
		return err
	}

	logger.Debug("Payment created in database", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
	})
	return nil
}

func (r *paymentRepository) FindAll(filter PaymentFilter) ([]model.Payment, error) {
	query := r.db.Preload("Order")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}

	var payments []model.Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		logger.Error("Failed to find payments in database", err, map[string]interface{}{
			"status": filter.Status,
			"method": filter.Method,
		})
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.Preload("Order").First(&payment, id).Error; err != nil {
		logger.Error("Failed to find payment by ID in database", err, map[string]interface{}{
			"payment_id": id,
		})
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByUserID(userID uint, filter PaymentFilter) ([]model.Payment, error) {
	query := r.db.Preload("Order").
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("payments.status = ?", filter.Status)
	}
	if filter.Method != "" {
		query = query.Where("payments.method = ?", filter.Method)
	}

	var payments []model.Payment
	if err := query.Order("payments.created_at DESC").Find(&payments).Error; err != nil {
		logger.Error("Failed to find payments by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Update(payment *model.Payment) error {
	logger.Debug("Updating payment in database", map[string]interface{}{
		"payment_id": payment.ID,
		"status":     payment.Status,
	})

	if err := r.db.Save(payment).Error; err != nil {
		logger.Error("Failed to update payment in database", err, map[string]interface{}{
			"payment_id": payment.ID,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) ExistsCompletedForOrder(orderID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, model.PaymentStatusCompleted).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check completed payments for order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *paymentRepository) Stats() (*PaymentStats, error) {
	stats := &PaymentStats{}

	if err := r.db.Model(&model.Payment{}).Count(&stats.Total).Error; err != nil {
		logger.Error("Failed to count payments", err, nil)
		return nil, err
	}

	counts := []struct {
		status model.PaymentStatus
		dest   *int64
	}{
		{model.PaymentStatusPending, &stats.Pending},
		{model.PaymentStatusCompleted, &stats.Completed},
		{model.PaymentStatusFailed, &stats.Failed},
		{model.PaymentStatusRefunded, &stats.Refunded},
	}
	for _, c := range counts {
		if err := r.db.Model(&model.Payment{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	// Refunded payments were collected before the refund, so they count
	// toward gross receipts and are backed out again via RefundedAmount.
	row := r.db.Model(&model.Payment{}).
		Where("status IN ?", []model.PaymentStatus{model.PaymentStatusCompleted, model.PaymentStatusRefunded}).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&stats.Collected); err != nil {
		logger.Error("Failed to compute collected payment total", err, nil)
		return nil, err
	}

	row = r.db.Model(&model.Payment{}).
		Where("status = ?", model.PaymentStatusRefunded).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&stats.RefundedAmount); err != nil {
		logger.Error("Failed to compute refunded payment total", err, nil)
		return nil, err
	}

	stats.NetRevenue = stats.Collected - stats.RefundedAmount
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Completed+stats.Refunded) / float64(stats.Total) * 100
	}

	return stats, nil
}
