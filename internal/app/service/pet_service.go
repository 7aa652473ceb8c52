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
	ErrPetNotFound       = errors.New("pet not found")
	ErrPetAlreadyAdopted = errors.New("pet is already adopted")
	ErrPetNotAdopted     = errors.New("pet is not adopted")
	ErrInvalidPetAge     = fmt.Errorf("pet age must be between %d and %d", model.PetMinAge, model.PetMaxAge)
)

type PetInput struct {
	Name        string
	Breed       string
	Age         int
	City        string
	Description string
	Vaccinated  bool
	AdoptionFee float64
	Currency    model.Currency
	CategoryID  uint
	ImageURL    string
}

type PetService interface {
	Create(input PetInput) (*model.Pet, error)
	List(filter repository.PetFilter) ([]model.Pet, error)
	Get(id uint) (*model.Pet, error)
	Update(id uint, input PetInput) (*model.Pet, error)
	Delete(id uint) error
	Adopt(petID, userID uint) (*model.Pet, error)
	MakeAvailable(petID uint) (*model.Pet, error)
	Stats() (*repository.PetStats, error)
}

type petService struct {
	petRepo      repository.PetRepository
	categoryRepo repository.CategoryRepository
}

func NewPetService(petRepo repository.PetRepository, categoryRepo repository.CategoryRepository) PetService {
	return &petService{petRepo: petRepo, categoryRepo: categoryRepo}
}

func (s *petService) Create(input PetInput) (*model.Pet, error) {
	logger.Info("Creating pet", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	if input.Age < model.PetMinAge || input.Age > model.PetMaxAge {
		logger.Warn("Pet validation failed: invalid age", map[string]interface{}{
			"name": input.Name,
			"age":  input.Age,
		})
		return nil, ErrInvalidPetAge
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

	pet := &model.Pet{
		Name:        input.Name,
		Breed:       input.Breed,
		Age:         input.Age,
		City:        input.City,
		Description: input.Description,
		Vaccinated:  input.Vaccinated,
		AdoptionFee: input.AdoptionFee,
		Currency:    currency,
		Status:      model.PetStatusAvailable,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
	}
	if err := s.petRepo.Create(pet); err != nil {
		return nil, err
	}

	logger.Info("Pet created", map[string]interface{}{
		"pet_id": pet.ID,
		"name":   pet.Name,
	})
	return pet, nil
}

func (s *petService) List(filter repository.PetFilter) ([]model.Pet, error) {
	pets, err := s.petRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list pets", err, nil)
		return nil, err
	}
	return pets, nil
}

func (s *petService) Get(id uint) (*model.Pet, error) {
	pet, err := s.petRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return pet, nil
}

func (s *petService) Update(id uint, input PetInput) (*model.Pet, error) {
	logger.Info("Updating pet", map[string]interface{}{
		"pet_id": id,
	})

	if input.Age < model.PetMinAge || input.Age > model.PetMaxAge {
		return nil, ErrInvalidPetAge
	}

	pet, err := s.petRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	if input.CategoryID != 0 && input.CategoryID != pet.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		pet.CategoryID = input.CategoryID
	}

	pet.Name = input.Name
	pet.Breed = input.Breed
	pet.Age = input.Age
	pet.City = input.City
	pet.Description = input.Description
	pet.Vaccinated = input.Vaccinated
	pet.AdoptionFee = input.AdoptionFee
	if input.Currency != "" {
		pet.Currency = input.Currency
	}
	if input.ImageURL != "" {
		pet.ImageURL = input.ImageURL
	}

	if err := s.petRepo.Update(pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *petService) Delete(id uint) error {
	logger.Info("Deleting pet", map[string]interface{}{
		"pet_id": id,
	})

	if _, err := s.petRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPetNotFound
		}
		return err
	}
	return s.petRepo.Delete(id)
}

// Adopt assigns the pet to the user. An adopted pet cannot be adopted
// again until staff makes it available.
func (s *petService) Adopt(petID, userID uint) (*model.Pet, error) {
	logger.Info("Adopting pet", map[string]interface{}{
		"pet_id":  petID,
		"user_id": userID,
	})

	pet, err := s.petRepo.FindByID(petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	if !pet.IsAvailable() {
		logger.Warn("Adoption rejected: pet already adopted", map[string]interface{}{
			"pet_id":  petID,
			"user_id": userID,
		})
		return nil, ErrPetAlreadyAdopted
	}

	pet.Status = model.PetStatusAdopted
	pet.OwnerID = &userID
	if err := s.petRepo.Update(pet); err != nil {
		return nil, err
	}

	logger.Info("Pet adopted", map[string]interface{}{
		"pet_id":  petID,
		"user_id": userID,
	})
	return pet, nil
}

// MakeAvailable clears the owner and relists the pet
func (s *petService) MakeAvailable(petID uint) (*model.Pet, error) {
	logger.Info("Making pet available", map[string]interface{}{
		"pet_id": petID,
	})

	pet, err := s.petRepo.FindByID(petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	if pet.Status != model.PetStatusAdopted {
		return nil, ErrPetNotAdopted
	}

	pet.Status = model.PetStatusAvailable
	pet.OwnerID = nil
	pet.Owner = nil
	if err := s.petRepo.Update(pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *petService) Stats() (*repository.PetStats, error) {
	return s.petRepo.Stats()
}
