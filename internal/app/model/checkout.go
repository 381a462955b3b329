package model

import (
	"time"
)

const (
	// PaymentStatusPending is the initial payment status of a new session.
	PaymentStatusPending = "Pending"
	// PaymentStatusPaid is the only payment status value that marks a
	// session paid. Anything else from the processor is rejected.
	PaymentStatusPaid = "paid"
)

// CheckoutSession snapshots a cart at checkout time and tracks payment
// confirmation. Lifecycle: Created -> Paid -> Finalized, with no skips and no
// backward transitions. Finalized implies paid.
type CheckoutSession struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Items           []CheckoutItem `gorm:"foreignKey:CheckoutID;constraint:OnDelete:CASCADE" json:"checkout_items"`
	ShippingAddress Address        `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod   string         `gorm:"not null" json:"payment_method"`
	TotalPrice      float64        `gorm:"not null" json:"total_price"`
	IsPaid          bool           `gorm:"default:false" json:"is_paid"`
	PaidAt          *time.Time     `json:"paid_at,omitempty"`
	PaymentStatus   string         `gorm:"type:varchar(30);default:'Pending'" json:"payment_status"`
	PaymentDetails  JSONMap        `gorm:"type:text" json:"payment_details,omitempty"`
	IsFinalized     bool           `gorm:"default:false" json:"is_finalized"`
	FinalizedAt     *time.Time     `json:"finalized_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CheckoutSession) TableName() string {
	return "checkout_sessions"
}

// CheckoutItem is an immutable copy of a cart line. The session owns these
// rows; later cart mutations never touch them.
type CheckoutItem struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	CheckoutID uint    `gorm:"not null;index" json:"-"`
	ProductID  uint    `gorm:"not null;index" json:"product_id"`
	Name       string  `gorm:"not null" json:"name"`
	Image      string  `gorm:"not null" json:"image"`
	Price      float64 `gorm:"not null" json:"price"`
	Size       string  `json:"size"`
	Color      string  `json:"color"`
	Quantity   int     `gorm:"not null;default:1" json:"quantity"`
}

func (CheckoutItem) TableName() string {
	return "checkout_items"
}
