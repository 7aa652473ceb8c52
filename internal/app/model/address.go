package model

import (
	"time"

	"gorm.io/gorm"
)

type AddressType string

const (
	AddressTypeShipping AddressType = "shipping"
	AddressTypeBilling  AddressType = "billing"
)

// MaxAddressesPerType caps how many addresses a user may keep per type
const MaxAddressesPerType = 2

type Address struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Type       AddressType    `gorm:"type:varchar(20);not null" json:"type"`
	Line1      string         `gorm:"type:text;not null" json:"line1"`
	Line2      string         `gorm:"type:text" json:"line2"`
	City       string         `gorm:"size:100;not null" json:"city"`
	State      string         `gorm:"size:100" json:"state"`
	PostalCode string         `gorm:"size:10" json:"postal_code"`
	Country    string         `gorm:"size:100;default:'India'" json:"country"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
