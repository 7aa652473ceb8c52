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

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CreateOrderRequest struct {
	CartID            uint `json:"cart_id" binding:"required"`
	ShippingAddressID uint `json:"shipping_address_id" binding:"required"`
	BillingAddressID  uint `json:"billing_address_id" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create places an order from the user's cart
// POST /api/v1/orders
func (ctrl *OrderController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create order", nil)
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "cart_id, shipping_address_id and billing_address_id are required")
		return
	}

	order, err := ctrl.orderService.Create(userID, service.CreateOrderInput{
		CartID:            req.CartID,
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
		case errors.Is(err, service.ErrCartAccessDenied):
			apperrors.Forbidden(c, "You can only order from your own cart")
		case errors.Is(err, service.ErrCartEmpty):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Cannot create an order from an empty cart")
		case errors.Is(err, service.ErrAddressNotFound):
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
		case errors.Is(err, service.ErrAddressNotOwned):
			apperrors.Forbidden(c, "You can only use your own addresses")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.Conflict(c, apperrors.CartInsufficientStock, "Not enough stock to fulfil the order")
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"user_id": userID,
				"cart_id": req.CartID,
			})
			apperrors.InternalError(c, "Failed to create order")
		}
		return
	}

	log.Info("Order created", map[string]interface{}{
		"order_id":    order.ID,
		"user_id":     userID,
		"total_price": order.TotalPrice,
	})
	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// ListMine returns the user's orders, optionally filtered by status
// GET /api/v1/orders/my
func (ctrl *OrderController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	orders, err := ctrl.orderService.ListByUser(userID, model.OrderStatus(c.Query("status")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Invalid order status")
			return
		}
		log.Error("Failed to list orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// ListAll returns every order. Staff only.
// GET /api/v1/orders
func (ctrl *OrderController) ListAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListAll(model.OrderStatus(c.Query("status")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Invalid order status")
			return
		}
		log.Error("Failed to list orders", err, nil)
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// Get returns one order. Owner or staff.
// GET /api/v1/orders/:id
func (ctrl *OrderController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.Get(uint(id), userID, middleware.IsStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderAccessDenied):
			apperrors.Forbidden(c, "You can only view your own orders")
		default:
			log.Error("Failed to fetch order", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "Failed to fetch order")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// Tracking returns the lightweight tracking view of an order
// GET /api/v1/orders/:id/tracking
func (ctrl *OrderController) Tracking(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	tracking, err := ctrl.orderService.Tracking(uint(id), userID, middleware.IsStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderAccessDenied):
			apperrors.Forbidden(c, "You can only track your own orders")
		default:
			log.Error("Failed to fetch order tracking", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "Failed to fetch tracking")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tracking": tracking,
	})
}

// Cancel lets the owner cancel a processing order
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) Cancel(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.Cancel(uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderAccessDenied):
			apperrors.Forbidden(c, "You can only cancel your own orders")
		case errors.Is(err, service.ErrOrderNotCancelable):
			apperrors.Conflict(c, apperrors.OrderNotCancelable, "Order can no longer be cancelled")
		default:
			log.Error("Failed to cancel order", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "Failed to cancel order")
		}
		return
	}

	log.Info("Order cancelled", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
	})
	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateStatus sets any valid status on an order. Staff only.
// PATCH /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(uint(id), model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Invalid order status")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
				"status":   req.Status,
			})
			apperrors.InternalError(c, "Failed to update order status")
		}
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// Stats returns order counters and revenue. Staff only.
// GET /api/v1/orders/stats
func (ctrl *OrderController) Stats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.orderService.Stats()
	if err != nil {
		log.Error("Failed to fetch order stats", err, nil)
		apperrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}
