package service

import (
	"errors"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAccessoryNotFound = errors.New("accessory not found")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrInvalidStock      = errors.New("stock cannot be negative")
)

// LowStockThreshold is the default cutoff for the low-stock report
const LowStockThreshold = 5

type AccessoryInput struct {
	Name        string
	Description string
	Price       float64
	Currency    model.Currency
	Stock       int
	CategoryID  uint
	ImageURL    string
}

type AccessoryService interface {
	Create(input AccessoryInput) (*model.Accessory, error)
	List(filter repository.AccessoryFilter) ([]model.Accessory, error)
	Get(id uint) (*model.Accessory, error)
	Update(id uint, input AccessoryInput) (*model.Accessory, error)
	UpdateStock(id uint, stock int) (*model.Accessory, error)
	Delete(id uint) error
	LowStock(threshold int) ([]model.Accessory, error)
	Stats() (*repository.AccessoryStats, error)
}

type accessoryService struct {
	accessoryRepo repository.AccessoryRepository
	categoryRepo  repository.CategoryRepository
}

func NewAccessoryService(
	accessoryRepo repository.AccessoryRepository,
	categoryRepo repository.CategoryRepository,
) AccessoryService {
	return &accessoryService{
		accessoryRepo: accessoryRepo,
		categoryRepo:  categoryRepo,
	}
}

func (s *accessoryService) validate(input AccessoryInput) error {
	if input.Price <= 0 {
		return ErrInvalidPrice
	}
	if input.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (s *accessoryService) Create(input AccessoryInput) (*model.Accessory, error) {
	logger.Info("Creating accessory", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
		"price":       input.Price,
	})

	if err := s.validate(input); err != nil {
		logger.Warn("Accessory validation failed", map[string]interface{}{
			"name":  input.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = model.CurrencyINR
	}

	accessory := &model.Accessory{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Currency:    currency,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
	}
	if err := s.accessoryRepo.Create(accessory); err != nil {
		return nil, err
	}

	logger.Info("Accessory created", map[string]interface{}{
		"accessory_id": accessory.ID,
		"name":         accessory.Name,
	})
	return accessory, nil
}

func (s *accessoryService) List(filter repository.AccessoryFilter) ([]model.Accessory, error) {
	accessories, err := s.accessoryRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list accessories", err, nil)
		return nil, err
	}
	return accessories, nil
}

func (s *accessoryService) Get(id uint) (*model.Accessory, error) {
	accessory, err := s.accessoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessoryNotFound
		}
		return nil, err
	}
	return accessory, nil
}

func (s *accessoryService) Update(id uint, input AccessoryInput) (*model.Accessory, error) {
	logger.Info("Updating accessory", map[string]interface{}{
		"accessory_id": id,
	})

	if err := s.validate(input); err != nil {
		return nil, err
	}

	accessory, err := s.accessoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessoryNotFound
		}
		return nil, err
	}

	if input.CategoryID != 0 && input.CategoryID != accessory.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		accessory.CategoryID = input.CategoryID
	}

	accessory.Name = input.Name
	accessory.Description = input.Description
	accessory.Price = input.Price
	accessory.Stock = input.Stock
	if input.Currency != "" {
		accessory.Currency = input.Currency
	}
	if input.ImageURL != "" {
		accessory.ImageURL = input.ImageURL
	}

	if err := s.accessoryRepo.Update(accessory); err != nil {
		return nil, err
	}
	return accessory, nil
}

// UpdateStock replaces the stock level without touching other fields
func (s *accessoryService) UpdateStock(id uint, stock int) (*model.Accessory, error) {
	logger.Info("Updating accessory stock", map[string]interface{}{
		"accessory_id": id,
		"stock":        stock,
	})

	if stock < 0 {
		return nil, ErrInvalidStock
	}

	accessory, err := s.accessoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessoryNotFound
		}
		return nil, err
	}

	accessory.Stock = stock
	if err := s.accessoryRepo.Update(accessory); err != nil {
		return nil, err
	}
	return accessory, nil
}

func (s *accessoryService) Delete(id uint) error {
	logger.Info("Deleting accessory", map[string]interface{}{
		"accessory_id": id,
	})

	if _, err := s.accessoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccessoryNotFound
		}
		return err
	}
	return s.accessoryRepo.Delete(id)
}

func (s *accessoryService) LowStock(threshold int) ([]model.Accessory, error) {
	if threshold <= 0 {
		threshold = LowStockThreshold
	}
	return s.accessoryRepo.FindLowStock(threshold)
}

func (s *accessoryService) Stats() (*repository.AccessoryStats, error) {
	return s.accessoryRepo.Stats()
}
