package model

import (
	"time"

	"gorm.io/gorm"
)

type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusAdopted   PetStatus = "adopted"
)

const (
	PetMinAge = 1
	PetMaxAge = 30
)

// Pet is an animal listed for adoption. A pet has an owner exactly when
// its status is adopted.
type Pet struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Breed       string         `gorm:"size:100" json:"breed"`
	Age         int            `gorm:"not null" json:"age"` // years, 1-30
	City        string         `gorm:"size:100" json:"city"`
	Description string         `gorm:"type:text" json:"description"`
	Vaccinated  bool           `gorm:"default:false" json:"vaccinated"`
	AdoptionFee float64        `json:"adoption_fee"` // informational only, adoption creates no order
	Currency    Currency       `gorm:"type:varchar(3);default:'INR'" json:"currency"`
	Status      PetStatus      `gorm:"type:varchar(20);default:'available'" json:"status"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	OwnerID     *uint          `gorm:"index" json:"owner_id,omitempty"`
	ImageURL    string         `json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Owner    *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Pet) TableName() string {
	return "pets"
}

// IsAvailable reports whether the pet can still be adopted
func (p *Pet) IsAvailable() bool {
	return p.Status == PetStatusAvailable
}
