package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pawstore/pawstore-backend/internal/errors"
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/internal/app/service"
	"github.com/pawstore/pawstore-backend/internal/middleware"
	"github.com/xuri/excelize/v2"
)

type AccessoryController struct {
	accessoryService service.AccessoryService
}

func NewAccessoryController(accessoryService service.AccessoryService) *AccessoryController {
	return &AccessoryController{
		accessoryService: accessoryService,
	}
}

type AccessoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Currency    string  `json:"currency"`
	Stock       int     `json:"stock" binding:"gte=0"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	ImageURL    string  `json:"image_url"`
}

type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required,gte=0"`
}

func parseAccessoryFilter(c *gin.Context) repository.AccessoryFilter {
	filter := repository.AccessoryFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	if v, err := strconv.ParseUint(c.Query("category_id"), 10, 32); err == nil {
		id := uint(v)
		filter.CategoryID = &id
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		filter.MaxPrice = &v
	}
	return filter
}

// List returns accessories with optional filters
// GET /api/v1/accessories
func (ctrl *AccessoryController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := parseAccessoryFilter(c)
	if v, err := strconv.ParseBool(c.Query("in_stock")); err == nil {
		filter.InStock = &v
	}

	accessories, err := ctrl.accessoryService.List(filter)
	if err != nil {
		log.Error("Failed to list accessories", err, nil)
		apperrors.InternalError(c, "Failed to fetch accessories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessories": accessories,
		"count":       len(accessories),
	})
}

// ListInStock returns accessories with stock remaining
// GET /api/v1/accessories/in-stock
func (ctrl *AccessoryController) ListInStock(c *gin.Context) {
	ctrl.listByStock(c, true)
}

// ListOutOfStock returns accessories with no stock left
// GET /api/v1/accessories/out-of-stock
func (ctrl *AccessoryController) ListOutOfStock(c *gin.Context) {
	ctrl.listByStock(c, false)
}

func (ctrl *AccessoryController) listByStock(c *gin.Context, inStock bool) {
	log := middleware.GetLoggerFromContext(c)

	filter := parseAccessoryFilter(c)
	filter.InStock = &inStock

	accessories, err := ctrl.accessoryService.List(filter)
	if err != nil {
		log.Error("Failed to list accessories by stock", err, map[string]interface{}{
			"in_stock": inStock,
		})
		apperrors.InternalError(c, "Failed to fetch accessories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessories": accessories,
		"count":       len(accessories),
	})
}

// ListLowStock returns in-stock accessories at or below the threshold. Staff only.
// GET /api/v1/accessories/low-stock
func (ctrl *AccessoryController) ListLowStock(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", "0"))
	accessories, err := ctrl.accessoryService.LowStock(threshold)
	if err != nil {
		log.Error("Failed to list low stock accessories", err, nil)
		apperrors.InternalError(c, "Failed to fetch accessories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessories": accessories,
		"count":       len(accessories),
	})
}

// Get returns one accessory
// GET /api/v1/accessories/:id
func (ctrl *AccessoryController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid accessory ID")
		return
	}

	accessory, err := ctrl.accessoryService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrAccessoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogAccessoryNotFound, "Accessory not found")
			return
		}
		log.Error("Failed to fetch accessory", err, map[string]interface{}{
			"accessory_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch accessory")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessory": accessory,
	})
}

// Create adds an accessory. Staff only.
// POST /api/v1/accessories
func (ctrl *AccessoryController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AccessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid accessory data")
		return
	}

	accessory, err := ctrl.accessoryService.Create(service.AccessoryInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    model.Currency(req.Currency),
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price must be greater than zero")
		case errors.Is(err, service.ErrInvalidStock):
			apperrors.BadRequest(c, apperrors.CatalogInvalidStock, "Stock cannot be negative")
		default:
			log.Error("Failed to create accessory", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.InternalError(c, "Failed to create accessory")
		}
		return
	}

	log.Info("Accessory created", map[string]interface{}{
		"accessory_id": accessory.ID,
		"name":         accessory.Name,
	})
	c.JSON(http.StatusCreated, gin.H{
		"accessory": accessory,
	})
}

// Update modifies an accessory. Staff only.
// PUT /api/v1/accessories/:id
func (ctrl *AccessoryController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid accessory ID")
		return
	}

	var req AccessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid accessory data")
		return
	}

	accessory, err := ctrl.accessoryService.Update(uint(id), service.AccessoryInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    model.Currency(req.Currency),
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccessoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogAccessoryNotFound, "Accessory not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price must be greater than zero")
		case errors.Is(err, service.ErrInvalidStock):
			apperrors.BadRequest(c, apperrors.CatalogInvalidStock, "Stock cannot be negative")
		default:
			log.Error("Failed to update accessory", err, map[string]interface{}{
				"accessory_id": id,
			})
			apperrors.InternalError(c, "Failed to update accessory")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessory": accessory,
	})
}

// UpdateStock replaces the stock level. Staff only.
// PATCH /api/v1/accessories/:id/stock
func (ctrl *AccessoryController) UpdateStock(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid accessory ID")
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "stock is required and cannot be negative")
		return
	}

	accessory, err := ctrl.accessoryService.UpdateStock(uint(id), *req.Stock)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccessoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogAccessoryNotFound, "Accessory not found")
		case errors.Is(err, service.ErrInvalidStock):
			apperrors.BadRequest(c, apperrors.CatalogInvalidStock, "Stock cannot be negative")
		default:
			log.Error("Failed to update accessory stock", err, map[string]interface{}{
				"accessory_id": id,
			})
			apperrors.InternalError(c, "Failed to update stock")
		}
		return
	}

	log.Info("Accessory stock updated", map[string]interface{}{
		"accessory_id": accessory.ID,
		"stock":        accessory.Stock,
	})
	c.JSON(http.StatusOK, gin.H{
		"accessory": accessory,
	})
}

// Delete removes an accessory. Staff only.
// DELETE /api/v1/accessories/:id
func (ctrl *AccessoryController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid accessory ID")
		return
	}

	if err := ctrl.accessoryService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrAccessoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogAccessoryNotFound, "Accessory not found")
			return
		}
		log.Error("Failed to delete accessory", err, map[string]interface{}{
			"accessory_id": id,
		})
		apperrors.InternalError(c, "Failed to delete accessory")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Accessory deleted successfully",
	})
}

// Stats returns inventory counters. Staff only.
// GET /api/v1/accessories/stats
func (ctrl *AccessoryController) Stats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.accessoryService.Stats()
	if err != nil {
		log.Error("Failed to fetch accessory stats", err, nil)
		apperrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

// Export streams the accessory inventory as an Excel workbook. Staff only.
// GET /api/v1/accessories/export
func (ctrl *AccessoryController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	accessories, err := ctrl.accessoryService.List(parseAccessoryFilter(c))
	if err != nil {
		log.Error("Failed to export accessories", err, nil)
		apperrors.InternalError(c, "Failed to export accessories")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Accessories"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Category", "Price", "Currency", "Stock", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, accessory := range accessories {
		values := []interface{}{
			accessory.ID,
			accessory.Name,
			accessory.Category.Name,
			accessory.Price,
			string(accessory.Currency),
			accessory.Stock,
			accessory.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("accessories_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write export workbook", err, nil)
		return
	}

	log.Info("Accessory inventory exported", map[string]interface{}{
		"count":    len(accessories),
		"filename": filename,
	})
}
