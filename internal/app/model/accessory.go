package model

import (
	"time"

	"gorm.io/gorm"
)

type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

type Accessory struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"` // must be > 0, validated at the service layer
	Currency    Currency       `gorm:"type:varchar(3);default:'INR'" json:"currency"`
	Stock       int            `gorm:"default:0" json:"stock"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	ImageURL    string         `json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category  Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CartItems []CartItem `gorm:"foreignKey:AccessoryID" json:"-"`
}

func (Accessory) TableName() string {
	return "accessories"
}

// InStock reports whether any units are left
func (a *Accessory) InStock() bool {
	return a.Stock > 0
}
