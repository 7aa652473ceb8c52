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

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required,oneof=adoption volunteer donation lost-pet general other"`
	Message string `json:"message" binding:"required,min=10"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create stores a public contact form submission. No authentication.
// POST /api/v1/contacts
func (ctrl *ContactController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid contact request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid contact data")
		return
	}

	contact, err := ctrl.contactService.Create(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: model.ContactSubject(req.Subject),
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactNameTooShort):
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Name must be at least 2 characters")
		case errors.Is(err, service.ErrContactMessageShort):
			apperrors.BadRequest(c, apperrors.ValidationTooShort, "Message must be at least 10 characters")
		case errors.Is(err, service.ErrContactPhoneInvalid):
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Phone must contain at least 10 digits")
		case errors.Is(err, service.ErrInvalidSubject):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid contact subject")
		default:
			log.Error("Failed to create contact message", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.InternalError(c, "Failed to submit contact message")
		}
		return
	}

	log.Info("Contact message received", map[string]interface{}{
		"contact_id": contact.ID,
		"subject":    contact.Subject,
	})
	c.JSON(http.StatusCreated, gin.H{
		"contact": contact,
	})
}

// List returns contact messages with optional filters. Staff only.
// GET /api/v1/contacts
func (ctrl *ContactController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ContactFilter{
		Status:  model.ContactStatus(c.Query("status")),
		Subject: model.ContactSubject(c.Query("subject")),
		Search:  c.Query("search"),
	}

	contacts, err := ctrl.contactService.List(filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContactStatus) {
			apperrors.BadRequest(c, apperrors.ContactInvalidStatus, "Invalid contact status")
			return
		}
		log.Error("Failed to list contact messages", err, nil)
		apperrors.InternalError(c, "Failed to fetch contact messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

// Get returns one contact message. Staff only.
// GET /api/v1/contacts/:id
func (ctrl *ContactController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid contact ID")
		return
	}

	contact, err := ctrl.contactService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			apperrors.NotFound(c, apperrors.ContactNotFound, "Contact message not found")
			return
		}
		log.Error("Failed to fetch contact message", err, map[string]interface{}{
			"contact_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch contact message")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contact": contact,
	})
}

// UpdateStatus moves a contact message through its workflow. Staff only.
// PATCH /api/v1/contacts/:id/status
func (ctrl *ContactController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid contact ID")
		return
	}

	var req UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "status is required")
		return
	}

	contact, err := ctrl.contactService.UpdateStatus(uint(id), model.ContactStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			apperrors.NotFound(c, apperrors.ContactNotFound, "Contact message not found")
		case errors.Is(err, service.ErrInvalidContactStatus):
			apperrors.BadRequest(c, apperrors.ContactInvalidStatus, "Invalid contact status")
		default:
			log.Error("Failed to update contact status", err, map[string]interface{}{
				"contact_id": id,
			})
			apperrors.InternalError(c, "Failed to update contact status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contact": contact,
	})
}

// Delete removes a contact message. Staff only.
// DELETE /api/v1/contacts/:id
func (ctrl *ContactController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid contact ID")
		return
	}

	if err := ctrl.contactService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			apperrors.NotFound(c, apperrors.ContactNotFound, "Contact message not found")
			return
		}
		log.Error("Failed to delete contact message", err, map[string]interface{}{
			"contact_id": id,
		})
		apperrors.InternalError(c, "Failed to delete contact message")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact message deleted successfully",
	})
}

// Stats returns contact workflow counters. Staff only.
// GET /api/v1/contacts/stats
func (ctrl *ContactController) Stats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.contactService.Stats()
	if err != nil {
		log.Error("Failed to fetch contact stats", err, nil)
		apperrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}
