package repository

import (
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindAll() ([]model.Address, error)
	FindByID(id uint) (*model.Address, error)
	FindByUserID(userID uint, addressType model.AddressType) ([]model.Address, error)
	CountByUserAndType(userID uint, addressType model.AddressType) (int64, error)
	Update(address *model.Address) error
	Delete(id uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.Address) error {
	logger.Debug("Creating address in database", map[string]interface{}{
		"user_id": address.UserID,
		"type":    address.Type,
	})

	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"user_id": address.UserID,
			"type":    address.Type,
		})
		return err
	}

	logger.Debug("Address created in database", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    address.UserID,
	})
	return nil
}

func (r *addressRepository) FindAll() ([]model.Address, error) {
	var addresses []model.Address
	if err := r.db.Order("created_at DESC").Find(&addresses).Error; err != nil {
		logger.Error("Failed to find addresses in database", err, nil)
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) FindByID(id uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, id).Error; err != nil {
		logger.Error("Failed to find address by ID in database", err, map[string]interface{}{
			"address_id": id,
		})
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) FindByUserID(userID uint, addressType model.AddressType) ([]model.Address, error) {
	query := r.db.Where("user_id = ?", userID)
	if addressType != "" {
		query = query.Where("type = ?", addressType)
	}

	var addresses []model.Address
	if err := query.Order("created_at DESC").Find(&addresses).Error; err != nil {
		logger.Error("Failed to find addresses by user ID in database", err, map[string]interface{}{
			"user_id": userID,
			"type":    addressType,
		})
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) CountByUserAndType(userID uint, addressType model.AddressType) (int64, error) {
	var count int64
	err := r.db.Model(&model.Address{}).
		Where("user_id = ? AND type = ?", userID, addressType).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count addresses by user and type", err, map[string]interface{}{
			"user_id": userID,
			"type":    addressType,
		})
		return 0, err
	}
	return count, nil
}

func (r *addressRepository) Update(address *model.Address) error {
	logger.Debug("Updating address in database", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    address.UserID,
	})

	if err := r.db.Save(address).Error; err != nil {
		logger.Error("Failed to update address in database", err, map[string]interface{}{
			"address_id": address.ID,
		})
		return err
	}
	return nil
}

func (r *addressRepository) Delete(id uint) error {
	logger.Debug("Deleting address from database", map[string]interface{}{
		"address_id": id,
	})

	if err := r.db.Delete(&model.Address{}, id).Error; err != nil {
		logger.Error("Failed to delete address from database", err, map[string]interface{}{
			"address_id": id,
		})
		return err
	}
	return nil
}
