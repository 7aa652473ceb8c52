package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the value is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// userOrderTransitions lists the transitions a customer may request.
// Staff status updates are only checked for enum membership.
var userOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing: {OrderStatusCancelled},
}

// CanTransitionTo reports whether a customer may move an order from s to
// the target status
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, allowed := range userOrderTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Order snapshots a cart at checkout. TotalPrice is computed once at
// creation and never recomputed from the cart afterwards.
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	UserID            uint           `gorm:"not null;index" json:"user_id"`
	CartID            uint           `gorm:"not null;index" json:"cart_id"`
	TotalPrice        float64        `gorm:"not null" json:"total_price"`
	Status            OrderStatus    `gorm:"type:varchar(20);default:'processing'" json:"status"`
	ShippingAddressID uint           `gorm:"not null" json:"shipping_address_id"`
	BillingAddressID  uint           `gorm:"not null" json:"billing_address_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships. The cart FK is protected: a cart referenced by an
	// order cannot be deleted.
	User            User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Cart            Cart    `gorm:"foreignKey:CartID;constraint:OnDelete:RESTRICT" json:"cart,omitempty"`
	ShippingAddress Address `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	BillingAddress  Address `gorm:"foreignKey:BillingAddressID" json:"billing_address,omitempty"`
	Payments        []Payment `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
