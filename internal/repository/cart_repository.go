package repository

import (
	"errors"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface.
type CartRepository interface {
	ListByCustomer(customerID uint) ([]models.CartItem, error)
	GetByCustomerAndProduct(customerID, productID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByCustomerAndProduct(customerID, productID uint) error
	DeleteByProductIDs(customerID uint, productIDs []uint) error
	ClearByCustomer(customerID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByCustomer returns the customer's cart rows with products preloaded.
func (r *GormCartRepository) ListByCustomer(customerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("customer_id = ?", customerID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByCustomerAndProduct returns one cart row, nil when absent.
func (r *GormCartRepository) GetByCustomerAndProduct(customerID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert inserts or updates a cart row.
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("customer_id = ? AND product_id = ?", item.CustomerID, item.ProductID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   item.Quantity,
		"added_ip":   item.AddedIP,
		"updated_at": item.UpdatedAt,
	}
	return r.db.Model(&existing).Updates(updates).Error
}

// DeleteByCustomerAndProduct removes a cart row; no error when absent.
func (r *GormCartRepository) DeleteByCustomerAndProduct(customerID, productID uint) error {
	return r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).Delete(&models.CartItem{}).Error
}

// DeleteByProductIDs removes the given products from a customer's cart.
func (r *GormCartRepository) DeleteByProductIDs(customerID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.Where("customer_id = ? AND product_id IN ?", customerID, productIDs).Delete(&models.CartItem{}).Error
}

// ClearByCustomer empties the customer's cart.
func (r *GormCartRepository) ClearByCustomer(customerID uint) error {
	return r.db.Where("customer_id = ?", customerID).Delete(&models.CartItem{}).Error
}
