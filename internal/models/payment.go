package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentIntent records one gateway attempt for an order. An order may
// accumulate several intents (failed, abandoned) but at most one success.
type PaymentIntent struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	OrderID          uint           `gorm:"index;not null" json:"order_id"`
	CustomerID       uint           `gorm:"index;not null" json:"customer_id"`
	Reference        string         `gorm:"uniqueIndex;not null" json:"reference"`
	Channel          string         `gorm:"not null" json:"channel"`
	Amount           Money          `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency         string         `gorm:"not null" json:"currency"`
	Status           string         `gorm:"index;not null" json:"status"` // initiated / success / failed / abandoned
	AuthorizationURL string         `gorm:"type:text" json:"authorization_url"`
	ProviderPayload  JSON           `gorm:"type:json" json:"provider_payload"`
	ExpiresAt        *time.Time     `gorm:"index" json:"expires_at"`
	VerifiedAt       *time.Time     `gorm:"index" json:"verified_at"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (PaymentIntent) TableName() string {
	return "payment_intents"
}

// Payment is the confirmed-payment ledger. The unique index on OrderID
// enforces exactly one payment per order.
type Payment struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"uniqueIndex;not null" json:"order_id"`
	CustomerID  uint           `gorm:"index;not null" json:"customer_id"`
	Reference   string         `gorm:"uniqueIndex;not null" json:"reference"`
	Channel     string         `gorm:"not null" json:"channel"`
	Amount      Money          `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency    string         `gorm:"not null" json:"currency"`
	PaymentDate time.Time      `gorm:"index;not null" json:"payment_date"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Payment) TableName() string {
	return "payments"
}
