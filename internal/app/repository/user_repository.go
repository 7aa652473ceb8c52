package repository

import (
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindAll() ([]model.User, error)
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": user.Username,
			"email":    user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		logger.Error("Failed to find users in database", err, nil)
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": user.ID,
	})

	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) Delete(id uint) error {
	logger.Debug("Deleting user from database", map[string]interface{}{
		"user_id": id,
	})

	if err := r.db.Delete(&model.User{}, id).Error; err != nil {
		logger.Error("Failed to delete user from database", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}

// AdminProfileRepository manages the staff-side 1:1 profiles

type AdminProfileRepository interface {
	Create(profile *model.AdminProfile) error
	FindAll() ([]model.AdminProfile, error)
	FindByID(id uint) (*model.AdminProfile, error)
	FindByUserID(userID uint) (*model.AdminProfile, error)
	Update(profile *model.AdminProfile) error
	Delete(id uint) error
}

type adminProfileRepository struct {
	db *gorm.DB
}

func NewAdminProfileRepository(db *gorm.DB) AdminProfileRepository {
	return &adminProfileRepository{db: db}
}

func (r *adminProfileRepository) Create(profile *model.AdminProfile) error {
	logger.Debug("Creating admin profile in database", map[string]interface{}{
		"user_id": profile.UserID,
	})

	if err := r.db.Create(profile).Error; err != nil {
		logger.Error("Failed to create admin profile in database", err, map[string]interface{}{
			"user_id": profile.UserID,
		})
		return err
	}
	return nil
}

func (r *adminProfileRepository) FindAll() ([]model.AdminProfile, error) {
	var profiles []model.AdminProfile
	if err := r.db.Preload("User").Order("created_at DESC").Find(&profiles).Error; err != nil {
		logger.Error("Failed to find admin profiles in database", err, nil)
		return nil, err
	}
	return profiles, nil
}

func (r *adminProfileRepository) FindByID(id uint) (*model.AdminProfile, error) {
	var profile model.AdminProfile
	if err := r.db.Preload("User").First(&profile, id).Error; err != nil {
		logger.Error("Failed to find admin profile by ID in database", err, map[string]interface{}{
			"admin_profile_id": id,
		})
		return nil, err
	}
	return &profile, nil
}

func (r *adminProfileRepository) FindByUserID(userID uint) (*model.AdminProfile, error) {
	var profile model.AdminProfile
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *adminProfileRepository) Update(profile *model.AdminProfile) error {
	logger.Debug("Updating admin profile in database", map[string]interface{}{
		"admin_profile_id": profile.ID,
	})

	if err := r.db.Save(profile).Error; err != nil {
		logger.Error("Failed to update admin profile in database", err, map[string]interface{}{
			"admin_profile_id": profile.ID,
		})
		return err
	}
	return nil
}

func (r *adminProfileRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.AdminProfile{}, id).Error; err != nil {
		logger.Error("Failed to delete admin profile from database", err, map[string]interface{}{
			"admin_profile_id": id,
		})
		return err
	}
	return nil
}
