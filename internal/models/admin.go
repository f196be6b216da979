package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a back-office account.
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`
	Email              string         `gorm:"index" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Role               string         `gorm:"type:varchar(20);not null;default:'support';index" json:"role"` // admin / support
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Admin) TableName() string {
	return "admins"
}
