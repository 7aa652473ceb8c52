package service

import (
	"errors"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAdminProfileNotFound = errors.New("admin profile not found")
	ErrAdminProfileExists   = errors.New("admin profile already exists for user")
	ErrNotStaffUser         = errors.New("user is not a staff account")
)

type AdminProfileInput struct {
	UserID       uint
	ProfileImage string
	IsSuperadmin bool
}

type AdminService interface {
	CreateProfile(input AdminProfileInput) (*model.AdminProfile, error)
	ListProfiles() ([]model.AdminProfile, error)
	GetProfile(id uint) (*model.AdminProfile, error)
	GetProfileByUserID(userID uint) (*model.AdminProfile, error)
	UpdateProfileImage(id uint, imageURL string) (*model.AdminProfile, error)
	ToggleSuperadmin(id uint) (*model.AdminProfile, error)
	DeleteProfile(id uint) error
}

type adminService struct {
	adminRepo repository.AdminProfileRepository
	userRepo  repository.UserRepository
}

func NewAdminService(adminRepo repository.AdminProfileRepository, userRepo repository.UserRepository) AdminService {
	return &adminService{adminRepo: adminRepo, userRepo: userRepo}
}

// CreateProfile attaches a staff profile to a user and promotes the user
// to the staff role if needed.
func (s *adminService) CreateProfile(input AdminProfileInput) (*model.AdminProfile, error) {
	logger.Info("Creating admin profile", map[string]interface{}{
		"user_id": input.UserID,
	})

	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.adminRepo.FindByUserID(input.UserID); err == nil {
		logger.Warn("Admin profile already exists", map[string]interface{}{
			"user_id": input.UserID,
		})
		return nil, ErrAdminProfileExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !user.IsStaff() {
		user.Role = model.RoleStaff
		if err := s.userRepo.Update(user); err != nil {
			logger.Error("Failed to promote user to staff", err, map[string]interface{}{
				"user_id": user.ID,
			})
			return nil, err
		}
	}

	profile := &model.AdminProfile{
		UserID:       input.UserID,
		ProfileImage: input.ProfileImage,
		IsSuperadmin: input.IsSuperadmin,
	}
	if err := s.adminRepo.Create(profile); err != nil {
		return nil, err
	}
	profile.User = *user

	logger.Info("Admin profile created", map[string]interface{}{
		"admin_profile_id": profile.ID,
		"user_id":          input.UserID,
	})
	return profile, nil
}

func (s *adminService) ListProfiles() ([]model.AdminProfile, error) {
	profiles, err := s.adminRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list admin profiles", err, nil)
		return nil, err
	}
	return profiles, nil
}

func (s *adminService) GetProfile(id uint) (*model.AdminProfile, error) {
	profile, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *adminService) GetProfileByUserID(userID uint) (*model.AdminProfile, error) {
	profile, err := s.adminRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *adminService) UpdateProfileImage(id uint, imageURL string) (*model.AdminProfile, error) {
	profile, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminProfileNotFound
		}
		return nil, err
	}

	profile.ProfileImage = imageURL
	if err := s.adminRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *adminService) ToggleSuperadmin(id uint) (*model.AdminProfile, error) {
	profile, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminProfileNotFound
		}
		return nil, err
	}

	profile.IsSuperadmin = !profile.IsSuperadmin
	if err := s.adminRepo.Update(profile); err != nil {
		return nil, err
	}

	logger.Info("Superadmin flag toggled", map[string]interface{}{
		"admin_profile_id": profile.ID,
		"is_superadmin":    profile.IsSuperadmin,
	})
	return profile, nil
}

func (s *adminService) DeleteProfile(id uint) error {
	if _, err := s.adminRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminProfileNotFound
		}
		return err
	}
	return s.adminRepo.Delete(id)
}
