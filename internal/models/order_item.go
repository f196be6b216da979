package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is an order line. Title and unit price are snapshots taken at
// checkout; later product edits never change a recorded order.
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OrderID    uint           `gorm:"index;not null" json:"order_id"`
	ProductID  uint           `gorm:"index;not null" json:"product_id"`
	Title      string         `gorm:"not null" json:"title"`
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
