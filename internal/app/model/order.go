package model

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the allowed order statuses
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the terminal purchase record, created only by finalizing a paid
// checkout session. Immutable afterwards except admin status/delivery
// updates. Deleting an order is a hard delete.
type Order struct {
	ID              uint        `gorm:"primarykey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	ShippingAddress Address     `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod   string      `gorm:"not null" json:"payment_method"`
	TotalPrice      float64     `gorm:"not null" json:"total_price"`
	IsPaid          bool        `gorm:"default:false" json:"is_paid"`
	PaidAt          *time.Time  `json:"paid_at,omitempty"`
	PaymentStatus   string      `gorm:"type:varchar(30);default:'pending'" json:"payment_status"`
	PaymentDetails  JSONMap     `gorm:"type:text" json:"payment_details,omitempty"`
	IsDelivered     bool        `gorm:"default:false" json:"is_delivered"`
	DeliveredAt     *time.Time  `json:"delivered_at,omitempty"`
	Status          OrderStatus `gorm:"type:varchar(20);default:'Processing'" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"-"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Name      string  `gorm:"not null" json:"name"`
	Image     string  `gorm:"not null" json:"image"`
	Price     float64 `gorm:"not null" json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
