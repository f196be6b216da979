package models

import (
	"time"

	"gorm.io/gorm"
)

// ArtisanProfile is a customer's vendor application. Products may reference
// a verified profile via Product.ArtisanID.
type ArtisanProfile struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CustomerID uint           `gorm:"uniqueIndex;not null" json:"customer_id"`
	ShopName   string         `gorm:"not null" json:"shop_name"`
	Bio        string         `gorm:"type:text" json:"bio"`
	Region     string         `gorm:"type:varchar(100)" json:"region"`
	Status     string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // pending / verified / rejected
	ReviewNote string         `gorm:"type:varchar(500)" json:"review_note,omitempty"`
	ReviewedAt *time.Time     `json:"reviewed_at"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Documents []ArtisanDocument `gorm:"foreignKey:ArtisanID" json:"documents,omitempty"`
}

// TableName sets the table name.
func (ArtisanProfile) TableName() string {
	return "artisan_profiles"
}

// ArtisanDocument is a supporting document attached to an application.
// Only the URL is stored; upload handling lives outside this service.
type ArtisanDocument struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ArtisanID uint           `gorm:"index;not null" json:"artisan_id"`
	Kind      string         `gorm:"type:varchar(50);not null" json:"kind"`
	URL       string         `gorm:"type:varchar(500);not null" json:"url"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (ArtisanDocument) TableName() string {
	return "artisan_documents"
}
