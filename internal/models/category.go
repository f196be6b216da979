package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products (drums, strings, wind instruments...).
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:varchar(500)" json:"description"`
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}

// Brand is a maker within a category; the (name, category) pair is unique.
type Brand struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"not null;uniqueIndex:idx_brand_name_category" json:"name"`
	CategoryID uint           `gorm:"not null;uniqueIndex:idx_brand_name_category" json:"category_id"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (Brand) TableName() string {
	return "brands"
}
