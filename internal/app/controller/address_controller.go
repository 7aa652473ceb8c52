package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pawstore/pawstore-backend/internal/errors"
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/service"
	"github.com/pawstore/pawstore-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	Type       string `json:"type" binding:"required,oneof=shipping billing"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ListMine returns the authenticated user's addresses
// GET /api/v1/addresses
func (ctrl *AddressController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	addresses, err := ctrl.addressService.ListByUser(userID, model.AddressType(c.Query("type")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidAddressType) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Address type must be shipping or billing")
			return
		}
		log.Error("Failed to list addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// ListShipping returns the user's shipping addresses
// GET /api/v1/addresses/shipping
func (ctrl *AddressController) ListShipping(c *gin.Context) {
	ctrl.listByType(c, model.AddressTypeShipping)
}

// ListBilling returns the user's billing addresses
// GET /api/v1/addresses/billing
func (ctrl *AddressController) ListBilling(c *gin.Context) {
	ctrl.listByType(c, model.AddressTypeBilling)
}

func (ctrl *AddressController) listByType(c *gin.Context, addressType model.AddressType) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	addresses, err := ctrl.addressService.ListByUser(userID, addressType)
	if err != nil {
		log.Error("Failed to list addresses by type", err, map[string]interface{}{
			"user_id": userID,
			"type":    addressType,
		})
		apperrors.InternalError(c, "Failed to fetch addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// Get returns one address. Owner or staff.
// GET /api/v1/addresses/:id
func (ctrl *AddressController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	address, err := ctrl.addressService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
			return
		}
		log.Error("Failed to fetch address", err, map[string]interface{}{
			"address_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch address")
		return
	}

	if !middleware.CanModify(c, address.UserID) {
		apperrors.Forbidden(c, "You can only view your own addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address,
	})
}

// Create adds an address for the authenticated user
// POST /api/v1/addresses
func (ctrl *AddressController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address data")
		return
	}

	address, err := ctrl.addressService.Create(userID, service.AddressInput{
		Type:       model.AddressType(req.Type),
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressLimitReached):
			apperrors.Conflict(c, apperrors.AddressLimitReached, "At most 2 addresses allowed per type")
		case errors.Is(err, service.ErrInvalidAddressType):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Address type must be shipping or billing")
		default:
			log.Error("Failed to create address", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "Failed to create address")
		}
		return
	}

	log.Info("Address created", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"address": address,
	})
}

// Update modifies an address. Owner or staff.
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address data")
		return
	}

	address, err := ctrl.addressService.Update(uint(id), userID, middleware.IsStaff(c), service.AddressInput{
		Type:       model.AddressType(req.Type),
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressNotFound):
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
		case errors.Is(err, service.ErrAddressAccessDenied):
			apperrors.Forbidden(c, "You can only modify your own addresses")
		case errors.Is(err, service.ErrAddressLimitReached):
			apperrors.Conflict(c, apperrors.AddressLimitReached, "At most 2 addresses allowed per type")
		default:
			log.Error("Failed to update address", err, map[string]interface{}{
				"address_id": id,
			})
			apperrors.InternalError(c, "Failed to update address")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address,
	})
}

// Delete removes an address. Owner or staff.
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid address ID")
		return
	}

	if err := ctrl.addressService.Delete(uint(id), userID, middleware.IsStaff(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrAddressNotFound):
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
		case errors.Is(err, service.ErrAddressAccessDenied):
			apperrors.Forbidden(c, "You can only delete your own addresses")
		default:
			log.Error("Failed to delete address", err, map[string]interface{}{
				"address_id": id,
			})
			apperrors.InternalError(c, "Failed to delete address")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
	})
}
