package service

import (
	"errors"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category has accessories or pets attached")
)

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryService interface {
	Create(input CategoryInput) (*model.Category, error)
	List(search string) ([]model.Category, error)
	Get(id uint) (*model.Category, error)
	Update(id uint, input CategoryInput) (*model.Category, error)
	Delete(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(input CategoryInput) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": input.Name,
	})

	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

func (s *categoryService) List(search string) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(search)
	if err != nil {
		logger.Error("Failed to list categories", err, map[string]interface{}{
			"search": search,
		})
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) Get(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(id uint, input CategoryInput) (*model.Category, error) {
	logger.Info("Updating category", map[string]interface{}{
		"category_id": id,
	})

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	category.Description = input.Description

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}
	return category, nil
}

// Delete refuses to remove a category that still has accessories or pets
func (s *categoryService) Delete(id uint) error {
	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})

	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	accessories, err := s.categoryRepo.CountAccessories(id)
	if err != nil {
		return err
	}
	pets, err := s.categoryRepo.CountPets(id)
	if err != nil {
		return err
	}
	if accessories > 0 || pets > 0 {
		logger.Warn("Cannot delete category in use", map[string]interface{}{
			"category_id": id,
			"accessories": accessories,
			"pets":        pets,
		})
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(id)
}
