package repository

import "time"

// ProductListFilter filters product listings.
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	BrandID      uint
	ArtisanID    uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	Status      string
	InvoiceNo   int64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PaymentListFilter filters payment ledger listings.
type PaymentListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	OrderID     uint
	Channel     string
	Reference   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CustomerListFilter filters customer listings.
type CustomerListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ArtisanListFilter filters artisan profile listings.
type ArtisanListFilter struct {
	Page     int
	PageSize int
	Status   string
	Region   string
	Search   string
}
