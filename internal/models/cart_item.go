package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is a pending line in a customer's cart, unique per
// (customer, product).
type CartItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CustomerID uint           `gorm:"not null;uniqueIndex:idx_cart_customer_product" json:"customer_id"`
	ProductID  uint           `gorm:"not null;uniqueIndex:idx_cart_customer_product" json:"product_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	AddedIP    string         `gorm:"type:varchar(64)" json:"added_ip,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
