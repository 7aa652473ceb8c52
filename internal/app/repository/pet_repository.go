package repository

import (
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// PetFilter narrows pet listings. Nil/empty fields are ignored.
type PetFilter struct {
	Status     model.PetStatus
	CategoryID *uint
	City       string
	Search     string
	OwnerID    *uint
}

// PetStats are the counters for the admin stats endpoint
type PetStats struct {
	Total      int64 `json:"total"`
	Available  int64 `json:"available"`
	Adopted    int64 `json:"adopted"`
	Vaccinated int64 `json:"vaccinated"`
}

type PetRepository interface {
	Create(pet *model.Pet) error
	FindAll(filter PetFilter) ([]model.Pet, error)
	FindByID(id uint) (*model.Pet, error)
	Update(pet *model.Pet) error
	Delete(id uint) error
	Stats() (*PetStats, error)
}

type petRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(pet *model.Pet) error {
	logger.Debug("Creating pet in database", map[string]interface{}{
		"name":        pet.Name,
		"category_id": pet.CategoryID,
	})

	if err := r.db.Create(pet).Error; err != nil {
		logger.Error("Failed to create pet in database", err, map[string]interface{}{
			"name":        pet.Name,
			"category_id": pet.CategoryID,
		})
		return err
	}

	logger.Debug("Pet created in database", map[string]interface{}{
		"pet_id": pet.ID,
		"name":   pet.Name,
	})
	return nil
}

func (r *petRepository) FindAll(filter PetFilter) ([]model.Pet, error) {
	logger.Debug("Finding pets in database", map[string]interface{}{
		"status": filter.Status,
		"city":   filter.City,
		"search": filter.Search,
	})

	query := r.db.Model(&model.Pet{}).Preload("Category")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.City != "" {
		query = query.Where("city LIKE ?", "%"+filter.City+"%")
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR breed LIKE ? OR city LIKE ?", pattern, pattern, pattern)
	}

	var pets []model.Pet
	if err := query.Order("created_at DESC").Find(&pets).Error; err != nil {
		logger.Error("Failed to find pets in database", err, nil)
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) FindByID(id uint) (*model.Pet, error) {
	var pet model.Pet
	if err := r.db.Preload("Category").Preload("Owner").First(&pet, id).Error; err != nil {
		logger.Error("Failed to find pet by ID in database", err, map[string]interface{}{
			"pet_id": id,
		})
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) Update(pet *model.Pet) error {
	logger.Debug("Updating pet in database", map[string]interface{}{
		"pet_id": pet.ID,
		"status": pet.Status,
	})

	if err := r.db.Save(pet).Error; err != nil {
		logger.Error("Failed to update pet in database", err, map[string]interface{}{
			"pet_id": pet.ID,
		})
		return err
	}
	return nil
}

func (r *petRepository) Delete(id uint) error {
	logger.Debug("Deleting pet from database", map[string]interface{}{
		"pet_id": id,
	})

	if err := r.db.Delete(&model.Pet{}, id).Error; err != nil {
		logger.Error("Failed to delete pet from database", err, map[string]interface{}{
			"pet_id": id,
		})
		return err
	}
	return nil
}

func (r *petRepository) Stats() (*PetStats, error) {
	stats := &PetStats{}

	if err := r.db.Model(&model.Pet{}).Count(&stats.Total).Error; err != nil {
		logger.Error("Failed to count pets", err, nil)
		return nil, err
	}
	if err := r.db.Model(&model.Pet{}).Where("status = ?", model.PetStatusAvailable).Count(&stats.Available).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Pet{}).Where("status = ?", model.PetStatusAdopted).Count(&stats.Adopted).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Pet{}).Where("vaccinated = ?", true).Count(&stats.Vaccinated).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
