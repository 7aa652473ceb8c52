package repository

import (
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll(search string) ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	Update(category *model.Category) error
	Delete(id uint) error
	CountAccessories(categoryID uint) (int64, error)
	CountPets(categoryID uint) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name": category.Name,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}

	logger.Debug("Category created in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}

func (r *categoryRepository) FindAll(search string) ([]model.Category, error) {
	logger.Debug("Finding categories in database", map[string]interface{}{
		"search": search,
	})

	query := r.db.Model(&model.Category{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var categories []model.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories in database", err, nil)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		logger.Error("Failed to find category by ID in database", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	logger.Debug("Updating category in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(id uint) error {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": id,
	})

	if err := r.db.Delete(&model.Category{}, id).Error; err != nil {
		logger.Error("Failed to delete category from database", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) CountAccessories(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Accessory{}).Where("category_id = ?", categoryID).Count(&count).Error
	if err != nil {
		logger.Error("Failed to count accessories for category", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return 0, err
	}
	return count, nil
}

func (r *categoryRepository) CountPets(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Pet{}).Where("category_id = ?", categoryID).Count(&count).Error
	if err != nil {
		logger.Error("Failed to count pets for category", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return 0, err
	}
	return count, nil
}
