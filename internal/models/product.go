package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog listing.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null;index" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	BrandID     *uint          `gorm:"index" json:"brand_id,omitempty"`
	ArtisanID   *uint          `gorm:"index" json:"artisan_id,omitempty"` // set when listed by a verified artisan
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Images      StringArray    `gorm:"type:json" json:"images"`
	Status      string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
