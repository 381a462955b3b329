package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

// ValidGender reports whether s is one of the allowed gender values
func ValidGender(s string) bool {
	switch Gender(s) {
	case GenderMen, GenderWomen, GenderUnisex:
		return true
	}
	return false
}

// ProductImage is one entry of a product's ordered image gallery
type ProductImage struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
}

// ImageList stores the image gallery as a JSON column
type ImageList []ProductImage

// Value implements database/sql/driver.Valuer
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements database/sql.Scanner
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	bytes, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, l)
}

// Dimensions of the physical product, for shipping estimates
type Dimensions struct {
	Length float64 `json:"length,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	DiscountPrice *float64       `json:"discount_price,omitempty"`
	CountInStock  int            `gorm:"not null;default:0" json:"count_in_stock"`
	SKU           string         `gorm:"uniqueIndex;not null" json:"sku"`
	Category      string         `gorm:"index;not null" json:"category"`
	Brand         string         `gorm:"index" json:"brand"`
	Material      string         `json:"material"`
	Sizes         StringArray    `gorm:"type:text" json:"sizes"`
	Colors        StringArray    `gorm:"type:text" json:"colors"`
	Collections   StringArray    `gorm:"type:text" json:"collections"`
	Tags          StringArray    `gorm:"type:text" json:"tags,omitempty"`
	Gender        Gender         `gorm:"type:varchar(10);index" json:"gender"`
	Images        ImageList      `gorm:"type:text" json:"images"`
	IsFeatured    bool           `gorm:"default:false" json:"is_featured"`
	IsPublished   bool           `gorm:"default:false" json:"is_published"`
	Rating        float64        `gorm:"default:0" json:"rating"`
	NumReviews    int            `gorm:"default:0" json:"num_reviews"`
	Dimensions    Dimensions     `gorm:"embedded;embeddedPrefix:dim_" json:"dimensions"`
	Weight        float64        `json:"weight,omitempty"`
	UserID        uint           `gorm:"not null;index" json:"user_id"` // admin who created it
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// FirstImageURL returns the URL snapshotted into cart lines when the product
// is added, empty when the gallery is empty.
func (p *Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// EffectivePrice is the price charged for the product, the discount price
// when one is set.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}
