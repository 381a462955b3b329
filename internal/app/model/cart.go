package model

import (
	"time"
)

// Cart is owned by exactly one identity: a registered user or an anonymous
// guest. Never both, never neither once created.
type Cart struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	UserID     *uint      `gorm:"index" json:"user_id,omitempty"`
	GuestID    *string    `gorm:"index" json:"guest_id,omitempty"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice float64    `gorm:"not null;default:0" json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem is one (product, size, color) line with a denormalized snapshot of
// the product's name/image/price taken when it was added.
type CartItem struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	CartID    uint    `gorm:"not null;index" json:"-"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// FindItem returns the index of the line matching the (productID, size,
// color) identity key, or -1.
func (c *Cart) FindItem(productID uint, size, color string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Size == size && item.Color == color {
			return i
		}
	}
	return -1
}

// RecalculateTotal recomputes TotalPrice from the current lines. Must be
// called after every mutation so the stored total never drifts.
func (c *Cart) RecalculateTotal() {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalPrice = total
}
