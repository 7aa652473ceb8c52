package service

import (
	"errors"
	"fmt"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAddressNotFound     = errors.New("address not found")
	ErrAddressAccessDenied = errors.New("address belongs to another user")
	ErrAddressLimitReached = fmt.Errorf("at most %d addresses allowed per type", model.MaxAddressesPerType)
	ErrInvalidAddressType  = errors.New("invalid address type")
)

type AddressInput struct {
	Type       model.AddressType
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

type AddressService interface {
	Create(userID uint, input AddressInput) (*model.Address, error)
	ListByUser(userID uint, addressType model.AddressType) ([]model.Address, error)
	ListAll() ([]model.Address, error)
	Get(id uint) (*model.Address, error)
	Update(id, userID uint, isStaff bool, input AddressInput) (*model.Address, error)
	Delete(id, userID uint, isStaff bool) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

// Create enforces the per-type cap before inserting
func (s *addressService) Create(userID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Creating address", map[string]interface{}{
		"user_id": userID,
		"type":    input.Type,
	})

	if input.Type != model.AddressTypeShipping && input.Type != model.AddressTypeBilling {
		return nil, ErrInvalidAddressType
	}

	count, err := s.addressRepo.CountByUserAndType(userID, input.Type)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxAddressesPerType {
		logger.Warn("Address limit reached", map[string]interface{}{
			"user_id": userID,
			"type":    input.Type,
			"count":   count,
		})
		return nil, ErrAddressLimitReached
	}

	country := input.Country
	if country == "" {
		country = "India"
	}

	address := &model.Address{
		UserID:     userID,
		Type:       input.Type,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    country,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}

	logger.Info("Address created", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
	})
	return address, nil
}

func (s *addressService) ListByUser(userID uint, addressType model.AddressType) ([]model.Address, error) {
	if addressType != "" &&
		addressType != model.AddressTypeShipping &&
		addressType != model.AddressTypeBilling {
		return nil, ErrInvalidAddressType
	}
	return s.addressRepo.FindByUserID(userID, addressType)
}

func (s *addressService) ListAll() ([]model.Address, error) {
	return s.addressRepo.FindAll()
}

func (s *addressService) Get(id uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return address, nil
}

func (s *addressService) Update(id, userID uint, isStaff bool, input AddressInput) (*model.Address, error) {
	logger.Info("Updating address", map[string]interface{}{
		"address_id": id,
		"user_id":    userID,
	})

	address, err := s.addressRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	if address.UserID != userID && !isStaff {
		logger.Warn("Address update denied", map[string]interface{}{
			"address_id": id,
			"user_id":    userID,
			"owner_id":   address.UserID,
		})
		return nil, ErrAddressAccessDenied
	}

	// Type changes are also capped per type
	if input.Type != "" && input.Type != address.Type {
		if input.Type != model.AddressTypeShipping && input.Type != model.AddressTypeBilling {
			return nil, ErrInvalidAddressType
		}
		count, err := s.addressRepo.CountByUserAndType(address.UserID, input.Type)
		if err != nil {
			return nil, err
		}
		if count >= model.MaxAddressesPerType {
			return nil, ErrAddressLimitReached
		}
		address.Type = input.Type
	}

	address.Line1 = input.Line1
	address.Line2 = input.Line2
	address.City = input.City
	address.State = input.State
	address.PostalCode = input.PostalCode
	if input.Country != "" {
		address.Country = input.Country
	}

	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) Delete(id, userID uint, isStaff bool) error {
	logger.Info("Deleting address", map[string]interface{}{
		"address_id": id,
		"user_id":    userID,
	})

	address, err := s.addressRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}

	if address.UserID != userID && !isStaff {
		return ErrAddressAccessDenied
	}

	return s.addressRepo.Delete(id)
}
