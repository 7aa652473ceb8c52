package repository

import (
	"errors"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// CartStats are the counters for the admin stats endpoint
type CartStats struct {
	Total int64 `json:"total"`
	Empty int64 `json:"empty"`
}

type CartRepository interface {
	Create(cart *model.Cart) error
	FindAll() ([]model.Cart, error)
	FindEmpty() ([]model.Cart, error)
	FindByID(id uint) (*model.Cart, error)
	FindByUserID(userID uint) ([]model.Cart, error)
	GetOrCreateByUserID(userID uint) (*model.Cart, error)
	Delete(id uint) error

	CreateItem(item *model.CartItem) error
	FindItemByID(id uint) (*model.CartItem, error)
	FindItemByCartAndAccessory(cartID, accessoryID uint) (*model.CartItem, error)
	UpdateItem(item *model.CartItem) error
	DeleteItem(id uint) error
	ClearItems(cartID uint) error

	Stats() (*CartStats, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	logger.Debug("Creating cart in database", map[string]interface{}{
		"user_id": cart.UserID,
	})

	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"user_id": cart.UserID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindAll() ([]model.Cart, error) {
	var carts []model.Cart
	err := r.db.Preload("Items.Accessory").Order("created_at DESC").Find(&carts).Error
	if err != nil {
		logger.Error("Failed to find carts in database", err, nil)
		return nil, err
	}
	return carts, nil
}

func (r *cartRepository) FindEmpty() ([]model.Cart, error) {
	var carts []model.Cart
	err := r.db.
		Where("id NOT IN (?)", r.db.Model(&model.CartItem{}).Select("cart_id")).
		Order("created_at DESC").
		Find(&carts).Error
	if err != nil {
		logger.Error("Failed to find empty carts in database", err, nil)
		return nil, err
	}
	return carts, nil
}

func (r *cartRepository) FindByID(id uint) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.Preload("Items.Accessory").First(&cart, id).Error; err != nil {
		logger.Error("Failed to find cart by ID in database", err, map[string]interface{}{
			"cart_id": id,
		})
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.Cart, error) {
	var carts []model.Cart
	err := r.db.Preload("Items.Accessory").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&carts).Error
	if err != nil {
		logger.Error("Failed to find carts by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return carts, nil
}

// GetOrCreateByUserID returns the user's cart, creating an empty one on first use.
func (r *cartRepository) GetOrCreateByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Preload("Items.Accessory").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to find cart by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("No cart found for user, creating one", map[string]interface{}{
		"user_id": userID,
	})

	cart = model.Cart{UserID: userID}
	if err := r.db.Create(&cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	cart.Items = []model.CartItem{}
	return &cart, nil
}

func (r *cartRepository) Delete(id uint) error {
	logger.Debug("Deleting cart from database", map[string]interface{}{
		"cart_id": id,
	})

	if err := r.db.Delete(&model.Cart{}, id).Error; err != nil {
		logger.Error("Failed to delete cart from database", err, map[string]interface{}{
			"cart_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":      item.CartID,
		"accessory_id": item.AccessoryID,
		"quantity":     item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":      item.CartID,
			"accessory_id": item.AccessoryID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindItemByID(id uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.Preload("Accessory").First(&item, id).Error; err != nil {
		logger.Error("Failed to find cart item by ID in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindItemByCartAndAccessory(cartID, accessoryID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Preload("Accessory").
		Where("cart_id = ? AND accessory_id = ?", cartID, accessoryID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteItem(id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) ClearItems(cartID uint) error {
	logger.Debug("Clearing cart items in database", map[string]interface{}{
		"cart_id": cartID,
	})

	if err := r.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart items in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Stats() (*CartStats, error) {
	stats := &CartStats{}

	if err := r.db.Model(&model.Cart{}).Count(&stats.Total).Error; err != nil {
		logger.Error("Failed to count carts", err, nil)
		return nil, err
	}

	err := r.db.Model(&model.Cart{}).
		Where("id NOT IN (?)", r.db.Model(&model.CartItem{}).Select("cart_id")).
		Count(&stats.Empty).Error
	if err != nil {
		logger.Error("Failed to count empty carts", err, nil)
		return nil, err
	}

	return stats, nil
}
