package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"  // regular customer
	RoleStaff UserRole = "staff" // store staff / admin
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    string         `gorm:"size:100" json:"first_name"`
	LastName     string         `gorm:"size:100" json:"last_name"`
	Phone        string         `gorm:"size:30" json:"phone"`
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	IsActive     bool           `gorm:"default:true" json:"is_active"` // deactivated accounts cannot log in
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the account has staff privileges
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

// FullName joins first and last name, falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// AdminProfile is the staff-side profile attached 1:1 to a user
type AdminProfile struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	ProfileImage string         `json:"profile_image"`
	IsSuperadmin bool           `gorm:"default:false" json:"is_superadmin"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}
