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

type AdminController struct {
	adminService    service.AdminService
	overviewService service.OverviewService
}

func NewAdminController(adminService service.AdminService, overviewService service.OverviewService) *AdminController {
	return &AdminController{
		adminService:    adminService,
		overviewService: overviewService,
	}
}

type CreateAdminProfileRequest struct {
	UserID       uint   `json:"user_id" binding:"required"`
	ProfileImage string `json:"profile_image"`
	IsSuperadmin bool   `json:"is_superadmin"`
}

type UpdateAdminProfileRequest struct {
	ProfileImage string `json:"profile_image" binding:"required"`
}

// CreateProfile attaches a staff profile to a user
// POST /api/v1/admins
func (ctrl *AdminController) CreateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateAdminProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid admin profile data")
		return
	}

	profile, err := ctrl.adminService.CreateProfile(service.AdminProfileInput{
		UserID:       req.UserID,
		ProfileImage: req.ProfileImage,
		IsSuperadmin: req.IsSuperadmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, service.ErrAdminProfileExists):
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "Admin profile already exists for this user")
		default:
			log.Error("Failed to create admin profile", err, map[string]interface{}{
				"user_id": req.UserID,
			})
			apperrors.InternalError(c, "Failed to create admin profile")
		}
		return
	}

	log.Info("Admin profile created", map[string]interface{}{
		"admin_profile_id": profile.ID,
		"user_id":          req.UserID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"admin_profile": profile,
	})
}

// ListProfiles returns all staff profiles
// GET /api/v1/admins
func (ctrl *AdminController) ListProfiles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	profiles, err := ctrl.adminService.ListProfiles()
	if err != nil {
		log.Error("Failed to list admin profiles", err, nil)
		apperrors.InternalError(c, "Failed to fetch admin profiles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin_profiles": profiles,
		"count":          len(profiles),
	})
}

// GetProfile returns one staff profile
// GET /api/v1/admins/:id
func (ctrl *AdminController) GetProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid admin profile ID")
		return
	}

	profile, err := ctrl.adminService.GetProfile(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrAdminProfileNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Admin profile not found")
			return
		}
		log.Error("Failed to fetch admin profile", err, map[string]interface{}{
			"admin_profile_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch admin profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin_profile": profile,
	})
}

// UpdateProfileImage replaces the profile image
// PATCH /api/v1/admins/:id
func (ctrl *AdminController) UpdateProfileImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid admin profile ID")
		return
	}

	var req UpdateAdminProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "profile_image is required")
		return
	}

	profile, err := ctrl.adminService.UpdateProfileImage(uint(id), req.ProfileImage)
	if err != nil {
		if errors.Is(err, service.ErrAdminProfileNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Admin profile not found")
			return
		}
		log.Error("Failed to update admin profile", err, map[string]interface{}{
			"admin_profile_id": id,
		})
		apperrors.InternalError(c, "Failed to update admin profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin_profile": profile,
	})
}

// ToggleSuperadmin flips the superadmin flag
// POST /api/v1/admins/:id/toggle-superadmin
func (ctrl *AdminController) ToggleSuperadmin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid admin profile ID")
		return
	}

	profile, err := ctrl.adminService.ToggleSuperadmin(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrAdminProfileNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Admin profile not found")
			return
		}
		log.Error("Failed to toggle superadmin flag", err, map[string]interface{}{
			"admin_profile_id": id,
		})
		apperrors.InternalError(c, "Failed to toggle superadmin flag")
		return
	}

	log.Info("Superadmin flag toggled", map[string]interface{}{
		"admin_profile_id": profile.ID,
		"is_superadmin":    profile.IsSuperadmin,
	})
	c.JSON(http.StatusOK, gin.H{
		"admin_profile": profile,
	})
}

// DeleteProfile removes a staff profile
// DELETE /api/v1/admins/:id
func (ctrl *AdminController) DeleteProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid admin profile ID")
		return
	}

	if err := ctrl.adminService.DeleteProfile(uint(id)); err != nil {
		if errors.Is(err, service.ErrAdminProfileNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Admin profile not found")
			return
		}
		log.Error("Failed to delete admin profile", err, map[string]interface{}{
			"admin_profile_id": id,
		})
		apperrors.InternalError(c, "Failed to delete admin profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin profile deleted successfully",
	})
}

// Overview returns the cached cross-entity dashboard snapshot
// GET /api/v1/admin/overview
func (ctrl *AdminController) Overview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	overview, err := ctrl.overviewService.Get(c.Request.Context())
	if err != nil {
		log.Error("Failed to build admin overview", err, nil)
		apperrors.InternalError(c, "Failed to build overview")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overview": overview,
	})
}

// RefreshOverview recomputes the dashboard snapshot immediately
// POST /api/v1/admin/overview/refresh
func (ctrl *AdminController) RefreshOverview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	overview, err := ctrl.overviewService.Refresh(c.Request.Context())
	if err != nil {
		log.Error("Failed to refresh admin overview", err, nil)
		apperrors.InternalError(c, "Failed to refresh overview")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overview": overview,
	})
}
