package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pawstore/pawstore-backend/internal/errors"
	"github.com/pawstore/pawstore-backend/internal/app/service"
	"github.com/pawstore/pawstore-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	AccessoryID uint `json:"accessory_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// GetMyCart returns the authenticated user's cart, creating one on first use
// GET /api/v1/carts/my
func (ctrl *CartController) GetMyCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to cart", nil)
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	cart, err := ctrl.cartService.GetOrCreateMyCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":        cart,
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	})
}

// Get returns one cart. Owner or staff.
// GET /api/v1/carts/:id
func (ctrl *CartController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart ID")
		return
	}

	cart, err := ctrl.cartService.Get(uint(id), userID, middleware.IsStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
		case errors.Is(err, service.ErrCartAccessDenied):
			apperrors.Forbidden(c, "You can only view your own cart")
		default:
			log.Error("Failed to fetch cart", err, map[string]interface{}{
				"cart_id": id,
			})
			apperrors.InternalError(c, "Failed to fetch cart")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":        cart,
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	})
}

// ListAll returns every cart. Staff only.
// GET /api/v1/carts
func (ctrl *CartController) ListAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	carts, err := ctrl.cartService.ListAll()
	if err != nil {
		log.Error("Failed to list carts", err, nil)
		apperrors.InternalError(c, "Failed to fetch carts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"carts": carts,
		"count": len(carts),
	})
}

// ListEmpty returns carts with no items. Staff only.
// GET /api/v1/carts/empty
func (ctrl *CartController) ListEmpty(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	carts, err := ctrl.cartService.ListEmpty()
	if err != nil {
		log.Error("Failed to list empty carts", err, nil)
		apperrors.InternalError(c, "Failed to fetch carts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"carts": carts,
		"count": len(carts),
	})
}

// AddItem adds an accessory to the user's cart
// POST /api/v1/carts/my/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add to cart", nil)
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "accessory_id and a positive quantity are required")
		return
	}

	cart, err := ctrl.cartService.AddItem(userID, req.AccessoryID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccessoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogAccessoryNotFound, "Accessory not found")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.Conflict(c, apperrors.CartInsufficientStock, "Not enough stock for the requested quantity")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Quantity must be greater than zero")
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id":      userID,
				"accessory_id": req.AccessoryID,
			})
			apperrors.InternalError(c, "Failed to add item to cart")
		}
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"user_id":      userID,
		"accessory_id": req.AccessoryID,
		"quantity":     req.Quantity,
	})
	c.JSON(http.StatusOK, gin.H{
		"cart":        cart,
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	})
}

// UpdateItem replaces a cart line's quantity
// PATCH /api/v1/carts/items/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A positive quantity is required")
		return
	}

	item, err := ctrl.cartService.UpdateItem(userID, uint(itemID), middleware.IsStaff(c), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		case errors.Is(err, service.ErrCartAccessDenied):
			apperrors.Forbidden(c, "You can only modify your own cart")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.Conflict(c, apperrors.CartInsufficientStock, "Not enough stock for the requested quantity")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Quantity must be greater than zero")
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"cart_item_id": itemID,
			})
			apperrors.InternalError(c, "Failed to update cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_item": item,
	})
}

// RemoveItem deletes a cart line
// DELETE /api/v1/carts/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, uint(itemID), middleware.IsStaff(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		case errors.Is(err, service.ErrCartAccessDenied):
			apperrors.Forbidden(c, "You can only modify your own cart")
		default:
			log.Error("Failed to remove cart item", err, map[string]interface{}{
				"cart_item_id": itemID,
			})
			apperrors.InternalError(c, "Failed to remove cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}

// Clear empties a cart
// POST /api/v1/carts/:id/clear
func (ctrl *CartController) Clear(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart ID")
		return
	}

	if err := ctrl.cartService.Clear(uint(id), userID, middleware.IsStaff(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
		case errors.Is(err, service.ErrCartAccessDenied):
			apperrors.Forbidden(c, "You can only clear your own cart")
		default:
			log.Error("Failed to clear cart", err, map[string]interface{}{
				"cart_id": id,
			})
			apperrors.InternalError(c, "Failed to clear cart")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// Stats returns cart counters. Staff only.
// GET /api/v1/carts/stats
func (ctrl *CartController) Stats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.cartService.Stats()
	if err != nil {
		log.Error("Failed to fetch cart stats", err, nil)
		apperrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}
