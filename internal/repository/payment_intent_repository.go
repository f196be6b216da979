package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentIntentRepository tracks gateway attempts.
type PaymentIntentRepository interface {
	Create(intent *models.PaymentIntent) error
	Update(intent *models.PaymentIntent) error
	GetByID(id uint) (*models.PaymentIntent, error)
	GetByReference(reference string) (*models.PaymentIntent, error)
	GetByReferenceForUpdate(reference string) (*models.PaymentIntent, error)
	GetLatestInitiatedByOrder(orderID uint, now time.Time) (*models.PaymentIntent, error)
	ListByOrderID(orderID uint) ([]models.PaymentIntent, error)
	WithTx(tx *gorm.DB) *GormPaymentIntentRepository
}

// GormPaymentIntentRepository is the GORM implementation.
type GormPaymentIntentRepository struct {
	db *gorm.DB
}

// NewPaymentIntentRepository creates a payment intent repository.
func NewPaymentIntentRepository(db *gorm.DB) *GormPaymentIntentRepository {
	return &GormPaymentIntentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPaymentIntentRepository) WithTx(tx *gorm.DB) *GormPaymentIntentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentIntentRepository{db: tx}
}

// Create inserts an intent row.
func (r *GormPaymentIntentRepository) Create(intent *models.PaymentIntent) error {
	return r.db.Create(intent).Error
}

// Update saves an intent row.
func (r *GormPaymentIntentRepository) Update(intent *models.PaymentIntent) error {
	return r.db.Save(intent).Error
}

// GetByID fetches an intent by ID, nil when absent.
func (r *GormPaymentIntentRepository) GetByID(id uint) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := r.db.First(&intent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}

// GetByReference fetches an intent by reference, nil when absent.
func (r *GormPaymentIntentRepository) GetByReference(reference string) (*models.PaymentIntent, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var intent models.PaymentIntent
	result := r.db.Where("reference = ?", reference).Limit(1).Find(&intent)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &intent, nil
}

// GetByReferenceForUpdate fetches an intent by reference with a row lock.
// Call inside a transaction; callback verification serializes on this lock.
func (r *GormPaymentIntentRepository) GetByReferenceForUpdate(reference string) (*models.PaymentIntent, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var intent models.PaymentIntent
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reference = ?", reference).
		First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}

// GetLatestInitiatedByOrder returns the newest unexpired initiated intent
// for an order, nil when none. Used to reuse a checkout URL instead of
// creating a fresh gateway transaction.
func (r *GormPaymentIntentRepository) GetLatestInitiatedByOrder(orderID uint, now time.Time) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	result := r.db.Where(
		"order_id = ? AND status = ? AND (expires_at IS NULL OR expires_at > ?) AND authorization_url <> ''",
		orderID, constants.PaymentIntentStatusInitiated, now,
	).Order("id desc").Limit(1).Find(&intent)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &intent, nil
}

// ListByOrderID returns all attempts for an order, newest first.
func (r *GormPaymentIntentRepository) ListByOrderID(orderID uint) ([]models.PaymentIntent, error) {
	var intents []models.PaymentIntent
	if err := r.db.Where("order_id = ?", orderID).Order("id desc").Find(&intents).Error; err != nil {
		return nil, err
	}
	return intents, nil
}
