package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed order. InvoiceNo is the human-facing YYYYMMDDNNNN
// number allocated inside the checkout transaction.
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	InvoiceNo   int64          `gorm:"uniqueIndex;not null" json:"invoice_no"`
	CustomerID  uint           `gorm:"index;not null" json:"customer_id"`
	Status      string         `gorm:"index;not null" json:"status"`
	Currency    string         `gorm:"not null" json:"currency"`
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	ClientIP    string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`
	OrderDate   time.Time      `gorm:"index;not null" json:"order_date"`
	PaidAt      *time.Time     `gorm:"index" json:"paid_at"`
	ShippedAt   *time.Time     `json:"shipped_at"`
	DeliveredAt *time.Time     `json:"delivered_at"`
	CancelledAt *time.Time     `json:"cancelled_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
