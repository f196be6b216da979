package repository

import (
	"errors"
	"strings"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository is the confirmed-payment ledger interface.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByOrderID(orderID uint) (*models.Payment, error)
	GetByReference(reference string) (*models.Payment, error)
	ListAdmin(filter PaymentListFilter) ([]models.Payment, int64, error)
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository is the GORM implementation.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository.
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create inserts a ledger row. The unique index on order_id makes a second
// payment for the same order fail at the database.
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// GetByID fetches a payment by ID, nil when absent.
func (r *GormPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetByOrderID fetches the payment recorded for an order, nil when absent.
func (r *GormPaymentRepository) GetByOrderID(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	result := r.db.Where("order_id = ?", orderID).Limit(1).Find(&payment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &payment, nil
}

// GetByReference fetches a payment by gateway reference, nil when absent.
func (r *GormPaymentRepository) GetByReference(reference string) (*models.Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var payment models.Payment
	result := r.db.Where("reference = ?", reference).Limit(1).Find(&payment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &payment, nil
}

// ListAdmin lists ledger rows for the back office.
func (r *GormPaymentRepository) ListAdmin(filter PaymentListFilter) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})

	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Channel != "" {
		query = query.Where("channel = ?", filter.Channel)
	}
	if filter.Reference != "" {
		query = query.Where("reference = ?", filter.Reference)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var payments []models.Payment
	if err := query.Order("id desc").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
