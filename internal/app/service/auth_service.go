package service

import (
	"errors"
	"time"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"github.com/pawstore/pawstore-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountDisabled       = errors.New("account is deactivated")
	ErrUserNotFound          = errors.New("user not found")
)

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	Login(username, password string) (*model.User, *util.TokenPair, error)
	RefreshToken(refreshToken string) (*util.TokenPair, error)
	GetUserByID(id uint) (*model.User, error)
	ListUsers() ([]model.User, error)
	UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error)
	SetActive(userID uint, active bool) (*model.User, error)
	DeleteUser(userID uint) error
}

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(input RegisterInput) (*model.User, error) {
	logger.Info("Registering new user", map[string]interface{}{
		"username": input.Username,
		"email":    input.Email,
	})

	if err := util.ValidatePassword(input.Password); err != nil {
		logger.Warn("Registration rejected: weak password", map[string]interface{}{
			"username": input.Username,
		})
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		logger.Warn("Registration rejected: username already exists", map[string]interface{}{
			"username": input.Username,
		})
		return nil, ErrUsernameAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		logger.Warn("Registration rejected: email already exists", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": input.Username,
		})
		return nil, err
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         model.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user", err, map[string]interface{}{
			"username": input.Username,
		})
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}

func (s *authService) Login(username, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("User login attempt", map[string]interface{}{
		"username": username,
	})

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"username": username,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to fetch user for login", err, map[string]interface{}{
			"username": username,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"username": username,
		})
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Warn("Login rejected: account deactivated", map[string]interface{}{
			"user_id":  user.ID,
			"username": username,
		})
		return nil, nil, ErrAccountDisabled
	}

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtSecret, s.accessExpiry, s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate token pair", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
	return user, tokens, nil
}

func (s *authService) RefreshToken(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		logger.Warn("Refresh token validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtSecret, s.accessExpiry, s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate token pair", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	logger.Info("Token refreshed", map[string]interface{}{
		"user_id": user.ID,
	})
	return tokens, nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ListUsers() ([]model.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list users", err, nil)
		return nil, err
	}
	return users, nil
}

func (s *authService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*input.Email); err == nil {
			logger.Warn("Profile update rejected: email already exists", map[string]interface{}{
				"user_id": userID,
				"email":   *input.Email,
			})
			return nil, ErrEmailAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User profile updated", map[string]interface{}{
		"user_id": userID,
	})
	return user, nil
}

func (s *authService) SetActive(userID uint, active bool) (*model.User, error) {
	logger.Info("Changing user active flag", map[string]interface{}{
		"user_id": userID,
		"active":  active,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.IsActive = active
	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update user active flag", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return user, nil
}

func (s *authService) DeleteUser(userID uint) error {
	logger.Info("Deleting user", map[string]interface{}{
		"user_id": userID,
	})

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(userID)
}
