package repository

import (
	"errors"
	"strings"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository is the customer data access interface.
type CustomerRepository interface {
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	UpdateFields(id uint, updates map[string]interface{}) error
	GetByID(id uint) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	List(filter CustomerListFilter) ([]models.Customer, int64, error)
	WithTx(tx *gorm.DB) *GormCustomerRepository
}

// GormCustomerRepository is the GORM implementation.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository.
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// Create inserts a customer.
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update saves a customer.
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// UpdateFields updates selected columns.
func (r *GormCustomerRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Customer{}).Where("id = ?", id).Updates(updates).Error
}

// GetByID fetches a customer, nil when absent.
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByEmail fetches a customer by email, nil when absent.
func (r *GormCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var customer models.Customer
	result := r.db.Where("email = ?", email).Limit(1).Find(&customer)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &customer, nil
}

// List returns a filtered customer page for the back office.
func (r *GormCustomerRepository) List(filter CustomerListFilter) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{})

	if filter.Keyword != "" {
		condition, argCount := buildSearchLikeCondition(query, []string{"name", "email", "phone"})
		if condition != "" {
			query = query.Where(condition, repeatLikeArgs("%"+filter.Keyword+"%", argCount)...)
		}
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
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

	var customers []models.Customer
	if err := query.Order("id desc").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}
