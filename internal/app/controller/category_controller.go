package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pawstore/pawstore-backend/internal/errors"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/internal/app/service"
	"github.com/pawstore/pawstore-backend/internal/middleware"
)

type CategoryController struct {
	categoryService  service.CategoryService
	accessoryService service.AccessoryService
}

func NewCategoryController(categoryService service.CategoryService, accessoryService service.AccessoryService) *CategoryController {
	return &CategoryController{
		categoryService:  categoryService,
		accessoryService: accessoryService,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

// List returns all categories, optionally filtered by search
// GET /api/v1/categories
func (ctrl *CategoryController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.List(c.Query("search"))
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// Get returns one category
// GET /api/v1/categories/:id
func (ctrl *CategoryController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	category, err := ctrl.categoryService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// ListAccessories returns the accessories belonging to a category
// GET /api/v1/categories/:id/accessories
func (ctrl *CategoryController) ListAccessories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	if _, err := ctrl.categoryService.Get(uint(id)); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch category")
		return
	}

	categoryID := uint(id)
	accessories, err := ctrl.accessoryService.List(repository.AccessoryFilter{
		CategoryID: &categoryID,
	})
	if err != nil {
		log.Error("Failed to list category accessories", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch accessories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessories": accessories,
		"count":       len(accessories),
	})
}

// Create adds a category. Staff only.
// POST /api/v1/categories
func (ctrl *CategoryController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.Create(service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameTaken) {
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "Category name already exists")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to create category")
		return
	}

	log.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// Update modifies a category. Staff only.
// PUT /api/v1/categories/:id
func (ctrl *CategoryController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.Update(uint(id), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryNameTaken):
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "Category name already exists")
		default:
			log.Error("Failed to update category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "Failed to update category")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// Delete removes an empty category. Staff only.
// DELETE /api/v1/categories/:id
func (ctrl *CategoryController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	if err := ctrl.categoryService.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryInUse):
			apperrors.Conflict(c, apperrors.ResourceConflict, "Category still has accessories or pets attached")
		default:
			log.Error("Failed to delete category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "Failed to delete category")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}
