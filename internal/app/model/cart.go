package model

import (
	"time"

	"gorm.io/gorm"
)

// Cart is a user's shopping cart. A user may hold several carts; the
// "my cart" endpoint gets-or-creates one.
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User  User       `gorm:"foreignKey:UserID" json:"-"`
	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

// TotalItems sums the quantities across all lines.
// Totals are always derived from the current lines, never stored.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice derives the cart price from the current lines
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Accessory.Price * float64(item.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartItem is one accessory line in a cart. At most one line exists per
// (cart, accessory); adding the same accessory again sums quantities.
type CartItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CartID      uint           `gorm:"not null;index" json:"cart_id"`
	AccessoryID uint           `gorm:"not null;index" json:"accessory_id"`
	Quantity    int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Cart      Cart      `gorm:"foreignKey:CartID" json:"-"`
	Accessory Accessory `gorm:"foreignKey:AccessoryID" json:"accessory,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal is the line price at the accessory's current price
func (i *CartItem) Subtotal() float64 {
	return i.Accessory.Price * float64(i.Quantity)
}
