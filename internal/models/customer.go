package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a storefront account.
type Customer struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Name               string         `gorm:"not null" json:"name"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Phone              string         `gorm:"type:varchar(32)" json:"phone"`
	Address            string         `gorm:"type:varchar(255)" json:"address"`
	City               string         `gorm:"type:varchar(100)" json:"city"`
	Status             string         `gorm:"default:'active'" json:"status"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"` // bumped to revoke all tokens
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Customer) TableName() string {
	return "customers"
}
