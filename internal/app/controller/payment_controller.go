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

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

type CreatePaymentRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Method  string `json:"method" binding:"required,oneof=upi card cash"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func parsePaymentFilter(c *gin.Context) repository.PaymentFilter {
	return repository.PaymentFilter{
		Status: model.PaymentStatus(c.Query("status")),
		Method: model.PaymentMethod(c.Query("method")),
	}
}

// Create opens a pending payment for the user's order. The amount is
// always taken from the order, never from the request.
// POST /api/v1/payments
func (ctrl *PaymentController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create payment", nil)
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid payment request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "order_id and a valid method are required")
		return
	}

	payment, err := ctrl.paymentService.Create(userID, req.OrderID, model.PaymentMethod(req.Method))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderAccessDenied):
			apperrors.Forbidden(c, "You can only pay for your own orders")
		case errors.Is(err, service.ErrOrderAlreadyDelivered):
			apperrors.Conflict(c, apperrors.PaymentOrderDelivered, "Cannot pay for a delivered order")
		case errors.Is(err, service.ErrPaymentAlreadyCompleted):
			apperrors.Conflict(c, apperrors.PaymentAlreadyCompleted, "Order already has a completed payment")
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment method")
		default:
			log.Error("Failed to create payment", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": req.OrderID,
			})
			apperrors.InternalError(c, "Failed to create payment")
		}
		return
	}

	log.Info("Payment created", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
		"amount":     payment.Amount,
	})
	c.JSON(http.StatusCreated, gin.H{
		"payment": payment,
	})
}

// ListMine returns the user's payments
// GET /api/v1/payments/my
func (ctrl *PaymentController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	payments, err := ctrl.paymentService.ListByUser(userID, parsePaymentFilter(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPaymentStatus):
			apperrors.BadRequest(c, apperrors.PaymentInvalidStatus, "Invalid payment status")
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment method")
		default:
			log.Error("Failed to list payments", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "Failed to fetch payments")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}

// ListAll returns every payment. Staff only.
// GET /api/v1/payments
func (ctrl *PaymentController) ListAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	payments, err := ctrl.paymentService.ListAll(parsePaymentFilter(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPaymentStatus):
			apperrors.BadRequest(c, apperrors.PaymentInvalidStatus, "Invalid payment status")
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment method")
		default:
			log.Error("Failed to list payments", err, nil)
			apperrors.InternalError(c, "Failed to fetch payments")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}

// Get returns one payment. Owner or staff.
// GET /api/v1/payments/:id
func (ctrl *PaymentController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid payment ID")
		return
	}

	payment, err := ctrl.paymentService.Get(uint(id), userID, middleware.IsStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			apperrors.NotFound(c, apperrors.PaymentNotFound, "Payment not found")
		case errors.Is(err, service.ErrPaymentAccessDenied):
			apperrors.Forbidden(c, "You can only view your own payments")
		default:
			log.Error("Failed to fetch payment", err, map[string]interface{}{
				"payment_id": id,
			})
			apperrors.InternalError(c, "Failed to fetch payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment": payment,
	})
}

// Process completes a pending payment
// POST /api/v1/payments/:id/process
func (ctrl *PaymentController) Process(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid payment ID")
		return
	}

	payment, err := ctrl.paymentService.Process(uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			apperrors.NotFound(c, apperrors.PaymentNotFound, "Payment not found")
		case errors.Is(err, service.ErrPaymentAccessDenied):
			apperrors.Forbidden(c, "You can only process your own payments")
		case errors.Is(err, service.ErrPaymentNotPending):
			apperrors.Conflict(c, apperrors.PaymentNotPending, "Payment is not pending")
		default:
			log.Error("Failed to process payment", err, map[string]interface{}{
				"payment_id": id,
			})
			apperrors.InternalError(c, "Failed to process payment")
		}
		return
	}

	log.Info("Payment processed", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
	})
	c.JSON(http.StatusOK, gin.H{
		"payment": payment,
	})
}

// Refund reverses a completed payment and cancels the order. Staff only.
// POST /api/v1/payments/:id/refund
func (ctrl *PaymentController) Refund(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid payment ID")
		return
	}

	payment, err := ctrl.paymentService.Refund(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			apperrors.NotFound(c, apperrors.PaymentNotFound, "Payment not found")
		case errors.Is(err, service.ErrPaymentNotRefundable):
			apperrors.Conflict(c, apperrors.PaymentNotRefundable, "Only completed payments can be refunded")
		default:
			log.Error("Failed to refund payment", err, map[string]interface{}{
				"payment_id": id,
			})
			apperrors.InternalError(c, "Failed to refund payment")
		}
		return
	}

	log.Info("Payment refunded", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
	})
	c.JSON(http.StatusOK, gin.H{
		"payment": payment,
	})
}

// UpdateStatus sets any valid status on a payment. Staff only.
// PATCH /api/v1/payments/:id/status
func (ctrl *PaymentController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid payment ID")
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	payment, err := ctrl.paymentService.UpdateStatus(uint(id), model.PaymentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			apperrors.NotFound(c, apperrors.PaymentNotFound, "Payment not found")
		case errors.Is(err, service.ErrInvalidPaymentStatus):
			apperrors.BadRequest(c, apperrors.PaymentInvalidStatus, "Invalid payment status")
		default:
			log.Error("Failed to update payment status", err, map[string]interface{}{
				"payment_id": id,
				"status":     req.Status,
			})
			apperrors.InternalError(c, "Failed to update payment status")
		}
		return
	}

	log.Info("Payment status updated", map[string]interface{}{
		"payment_id": payment.ID,
		"status":     payment.Status,
	})
	c.JSON(http.StatusOK, gin.H{
		"payment": payment,
	})
}

// Stats returns payment counters. Staff only.
// GET /api/v1/payments/stats
func (ctrl *PaymentController) Stats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.paymentService.Stats()
	if err != nil {
		log.Error("Failed to fetch payment stats", err, nil)
		apperrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}
