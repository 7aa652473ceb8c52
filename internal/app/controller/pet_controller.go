package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pawstore/pawstore-backend/internal/errors"
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/internal/app/service"
	"github.com/pawstore/pawstore-backend/internal/middleware"
)

type PetController struct {
	petService service.PetService
}

func NewPetController(petService service.PetService) *PetController {
	return &PetController{
		petService: petService,
	}
}

type PetRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Breed       string  `json:"breed"`
	Age         int     `json:"age" binding:"required,min=1,max=30"`
	City        string  `json:"city"`
	Description string  `json:"description"`
	Vaccinated  bool    `json:"vaccinated"`
	AdoptionFee float64 `json:"adoption_fee" binding:"gte=0"`
	Currency    string  `json:"currency"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	ImageURL    string  `json:"image_url"`
}

func parsePetFilter(c *gin.Context) repository.PetFilter {
	filter := repository.PetFilter{
		Status: model.PetStatus(c.Query("status")),
		City:   c.Query("city"),
		Search: c.Query("search"),
	}
	if v, err := strconv.ParseUint(c.Query("category_id"), 10, 32); err == nil {
		id := uint(v)
		filter.CategoryID = &id
	}
	return filter
}

// List returns pets with optional filters
// GET /api/v1/pets
func (ctrl *PetController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	pets, err := ctrl.petService.List(parsePetFilter(c))
	if err != nil {
		log.Error("Failed to list pets", err, nil)
		apperrors.InternalError(c, "Failed to fetch pets")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pets":  pets,
		"count": len(pets),
	})
}

// ListAvailable returns pets open for adoption
// GET /api/v1/pets/available
func (ctrl *PetController) ListAvailable(c *gin.Context) {
	ctrl.listByStatus(c, model.PetStatusAvailable)
}

// ListAdopted returns adopted pets. Staff only.
// GET /api/v1/pets/adopted
func (ctrl *PetController) ListAdopted(c *gin.Context) {
	ctrl.listByStatus(c, model.PetStatusAdopted)
}

func (ctrl *PetController) listByStatus(c *gin.Context, status model.PetStatus) {
	log := middleware.GetLoggerFromContext(c)

	filter := parsePetFilter(c)
	filter.Status = status

	pets, err := ctrl.petService.List(filter)
	if err != nil {
		log.Error("Failed to list pets by status", err, map[string]interface{}{
			"status": status,
		})
		apperrors.InternalError(c, "Failed to fetch pets")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pets":  pets,
		"count": len(pets),
	})
}

// ListMine returns the pets the authenticated user has adopted
// GET /api/v1/pets/my
func (ctrl *PetController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	filter := repository.PetFilter{OwnerID: &userID}
	pets, err := ctrl.petService.List(filter)
	if err != nil {
		log.Error("Failed to list adopted pets", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch pets")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pets":  pets,
		"count": len(pets),
	})
}

// Get returns one pet
// GET /api/v1/pets/:id
func (ctrl *PetController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid pet ID")
		return
	}

	pet, err := ctrl.petService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			apperrors.NotFound(c, apperrors.PetNotFound, "Pet not found")
			return
		}
		log.Error("Failed to fetch pet", err, map[string]interface{}{
			"pet_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch pet")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pet": pet,
	})
}

// Create adds a pet listing. Staff only.
// POST /api/v1/pets
func (ctrl *PetController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid pet data")
		return
	}

	pet, err := ctrl.petService.Create(service.PetInput{
		Name:        req.Name,
		Breed:       req.Breed,
		Age:         req.Age,
		City:        req.City,
		Description: req.Description,
		Vaccinated:  req.Vaccinated,
		AdoptionFee: req.AdoptionFee,
		Currency:    model.Currency(req.Currency),
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrInvalidPetAge):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Pet age must be between 1 and 30")
		default:
			log.Error("Failed to create pet", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.InternalError(c, "Failed to create pet")
		}
		return
	}

	log.Info("Pet created", map[string]interface{}{
		"pet_id": pet.ID,
		"name":   pet.Name,
	})
	c.JSON(http.StatusCreated, gin.H{
		"pet": pet,
	})
}

// Update modifies a pet listing. Staff only.
// PUT /api/v1/pets/:id
func (ctrl *PetController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid pet ID")
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid pet data")
		return
	}

	pet, err := ctrl.petService.Update(uint(id), service.PetInput{
		Name:        req.Name,
		Breed:       req.Breed,
		Age:         req.Age,
		City:        req.City,
		Description: req.Description,
		Vaccinated:  req.Vaccinated,
		AdoptionFee: req.AdoptionFee,
		Currency:    model.Currency(req.Currency),
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound):
			apperrors.NotFound(c, apperrors.PetNotFound, "Pet not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrInvalidPetAge):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Pet age must be between 1 and 30")
		default:
			log.Error("Failed to update pet", err, map[string]interface{}{
				"pet_id": id,
			})
			apperrors.InternalError(c, "Failed to update pet")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pet": pet,
	})
}

// Delete removes a pet listing. Staff only.
// DELETE /api/v1/pets/:id
func (ctrl *PetController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid pet ID")
		return
	}

	if err := ctrl.petService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			apperrors.NotFound(c, apperrors.PetNotFound, "Pet not found")
			return
		}
		log.Error("Failed to delete pet", err, map[string]interface{}{
			"pet_id": id,
		})
		apperrors.InternalError(c, "Failed to delete pet")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pet deleted successfully",
	})
}

// Adopt assigns an available pet to the authenticated user
// POST /api/v1/pets/:id/adopt
func (ctrl *PetController) Adopt(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid pet ID")
		return
	}

	pet, err := ctrl.petService.Adopt(uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound):
			apperrors.NotFound(c, apperrors.PetNotFound, "Pet not found")
		case errors.Is(err, service.ErrPetAlreadyAdopted):
			apperrors.Conflict(c, apperrors.PetAlreadyAdopted, "Pet has already been adopted")
		default:
			log.Error("Failed to adopt pet", err, map[string]interface{}{
				"pet_id":  id,
				"user_id": userID,
			})
			apperrors.InternalError(c, "Failed to adopt pet")
		}
		return
	}

	log.Info("Pet adopted", map[string]interface{}{
		"pet_id":  pet.ID,
		"user_id": userID,
	})
	c.JSON(http.StatusOK, gin.H{
		"pet": pet,
	})
}

// MakeAvailable relists an adopted pet. Staff only.
// POST /api/v1/pets/:id/make-available
func (ctrl *PetController) MakeAvailable(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid pet ID")
		return
	}

	pet, err := ctrl.petService.MakeAvailable(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound):
			apperrors.NotFound(c, apperrors.PetNotFound, "Pet not found")
		case errors.Is(err, service.ErrPetNotAdopted):
			apperrors.Conflict(c, apperrors.PetNotAdopted, "Pet is not adopted")
		default:
			log.Error("Failed to make pet available", err, map[string]interface{}{
				"pet_id": id,
			})
			apperrors.InternalError(c, "Failed to make pet available")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pet": pet,
	})
}

// Stats returns adoption counters. Staff only.
// GET /api/v1/pets/stats
func (ctrl *PetController) Stats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.petService.Stats()
	if err != nil {
		log.Error("Failed to fetch pet stats", err, nil)
		apperrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}
