package repository

import (
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// AccessoryFilter narrows accessory listings. Nil fields are ignored.
type AccessoryFilter struct {
	CategoryID *uint
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	Search     string
	Ordering   string // price, -price, name, -name, created_at, -created_at
}

// AccessoryStats are the counters for the admin stats endpoint
type AccessoryStats struct {
	Total      int64   `json:"total"`
	InStock    int64   `json:"in_stock"`
	OutOfStock int64   `json:"out_of_stock"`
	StockValue float64 `json:"stock_value"`
}

type AccessoryRepository interface {
	Create(accessory *model.Accessory) error
	FindAll(filter AccessoryFilter) ([]model.Accessory, error)
	FindByID(id uint) (*model.Accessory, error)
	FindLowStock(threshold int) ([]model.Accessory, error)
	Update(accessory *model.Accessory) error
	Delete(id uint) error
	Stats() (*AccessoryStats, error)
}

type accessoryRepository struct {
	db *gorm.DB
}

func NewAccessoryRepository(db *gorm.DB) AccessoryRepository {
	return &accessoryRepository{db: db}
}

// allowed orderings, anything else falls back to newest-first
var accessoryOrderings = map[string]string{
	"price":       "price ASC",
	"-price":      "price DESC",
	"name":        "name ASC",
	"-name":       "name DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
}

func (r *accessoryRepository) Create(accessory *model.Accessory) error {
	logger.Debug("Creating accessory in database", map[string]interface{}{
		"name":        accessory.Name,
		"category_id": accessory.CategoryID,
		"price":       accessory.Price,
	})

	if err := r.db.Create(accessory).Error; err != nil {
		logger.Error("Failed to create accessory in database", err, map[string]interface{}{
			"name":        accessory.Name,
			"category_id": accessory.CategoryID,
		})
		return err
	}

	logger.Debug("Accessory created in database", map[string]interface{}{
		"accessory_id": accessory.ID,
		"name":         accessory.Name,
	})
	return nil
}

func (r *accessoryRepository) FindAll(filter AccessoryFilter) ([]model.Accessory, error) {
	logger.Debug("Finding accessories in database", map[string]interface{}{
		"search":   filter.Search,
		"ordering": filter.Ordering,
	})

	query := r.db.Model(&model.Accessory{}).Preload("Category")

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.InStock != nil {
		if *filter.InStock {
			query = query.Where("stock > 0")
		} else {
			query = query.Where("stock <= 0")
		}
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	ordering, ok := accessoryOrderings[filter.Ordering]
	if !ok {
		ordering = "created_at DESC"
	}

	var accessories []model.Accessory
	if err := query.Order(ordering).Find(&accessories).Error; err != nil {
		logger.Error("Failed to find accessories in database", err, nil)
		return nil, err
	}
	return accessories, nil
}

func (r *accessoryRepository) FindByID(id uint) (*model.Accessory, error) {
	var accessory model.Accessory
	if err := r.db.Preload("Category").First(&accessory, id).Error; err != nil {
		logger.Error("Failed to find accessory by ID in database", err, map[string]interface{}{
			"accessory_id": id,
		})
		return nil, err
	}
	return &accessory, nil
}

func (r *accessoryRepository) FindLowStock(threshold int) ([]model.Accessory, error) {
	var accessories []model.Accessory
	err := r.db.Preload("Category").
		Where("stock > 0 AND stock <= ?", threshold).
		Order("stock ASC").
		Find(&accessories).Error
	if err != nil {
		logger.Error("Failed to find low stock accessories in database", err, map[string]interface{}{
			"threshold": threshold,
		})
		return nil, err
	}
	return accessories, nil
}

func (r *accessoryRepository) Update(accessory *model.Accessory) error {
	logger.Debug("Updating accessory in database", map[string]interface{}{
		"accessory_id": accessory.ID,
		"stock":        accessory.Stock,
	})

	if err := r.db.Save(accessory).Error; err != nil {
		logger.Error("Failed to update accessory in database", err, map[string]interface{}{
			"accessory_id": accessory.ID,
		})
		return err
	}
	return nil
}

func (r *accessoryRepository) Delete(id uint) error {
	logger.Debug("Deleting accessory from database", map[string]interface{}{
		"accessory_id": id,
	})

	if err := r.db.Delete(&model.Accessory{}, id).Error; err != nil {
		logger.Error("Failed to delete accessory from database", err, map[string]interface{}{
			"accessory_id": id,
		})
		return err
	}
	return nil
}

func (r *accessoryRepository) Stats() (*AccessoryStats, error) {
	stats := &AccessoryStats{}

	if err := r.db.Model(&model.Accessory{}).Count(&stats.Total).Error; err != nil {
		logger.Error("Failed to count accessories", err, nil)
		return nil, err
	}
	if err := r.db.Model(&model.Accessory{}).Where("stock > 0").Count(&stats.InStock).Error; err != nil {
		return nil, err
	}
	stats.OutOfStock = stats.Total - stats.InStock

	row := r.db.Model(&model.Accessory{}).Select("COALESCE(SUM(price * stock), 0)").Row()
	if err := row.Scan(&stats.StockValue); err != nil {
		logger.Error("Failed to compute accessory stock value", err, nil)
		return nil, err
	}

	return stats, nil
}
