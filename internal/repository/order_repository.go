package repository

import (
	"errors"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository is the order ledger data access interface.
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndCustomer(id uint, customerID uint) (*models.Order, error)
	GetByInvoiceNo(invoiceNo int64) (*models.Order, error)
	GetByIDForUpdate(id uint) (*models.Order, error)
	ListItems(orderID uint) ([]models.OrderItem, error)
	ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	MaxInvoiceNoInRange(from, to int64) (int64, error)
	ResolveReceiverEmailByOrderID(orderID uint) (string, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create inserts the order and its lines.
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches an order by ID, nil when absent.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Preload("Payment").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndCustomer fetches a customer's order, nil when absent.
func (r *GormOrderRepository) GetByIDAndCustomer(id uint, customerID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Payment").
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByInvoiceNo fetches an order by invoice number, nil when absent.
func (r *GormOrderRepository) GetByInvoiceNo(invoiceNo int64) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Payment").
		Where("invoice_no = ?", invoiceNo).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate fetches an order with a row lock, nil when absent.
// Call inside a transaction.
func (r *GormOrderRepository) GetByIDForUpdate(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListItems returns the lines of an order.
func (r *GormOrderRepository) ListItems(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByCustomer lists a customer's orders.
func (r *GormOrderRepository) ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{}).Where("customer_id = ?", filter.CustomerID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InvoiceNo != 0 {
		query = query.Where("invoice_no = ?", filter.InvoiceNo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Items").Preload("Payment").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAdmin lists orders for the back office.
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InvoiceNo != 0 {
		query = query.Where("invoice_no = ?", filter.InvoiceNo)
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

	if err := query.Preload("Items").Preload("Payment").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// MaxInvoiceNoInRange returns the highest allocated invoice number inside
// [from, to), locking the scanned row. Call inside the checkout transaction;
// the unique index on invoice_no remains the hard guarantee, callers retry
// on a duplicate-key failure.
func (r *GormOrderRepository) MaxInvoiceNoInRange(from, to int64) (int64, error) {
	var row struct {
		InvoiceNo int64
	}
	result := r.db.Model(&models.Order{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("invoice_no").
		Where("invoice_no >= ? AND invoice_no < ?", from, to).
		Order("invoice_no desc").
		Limit(1).
		Find(&row)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, nil
	}
	return row.InvoiceNo, nil
}

// ResolveReceiverEmailByOrderID resolves the notification address for an order.
func (r *GormOrderRepository) ResolveReceiverEmailByOrderID(orderID uint) (string, error) {
	if orderID == 0 {
		return "", nil
	}

	var orderRow struct {
		CustomerID uint
	}
	if err := r.db.Model(&models.Order{}).
		Select("customer_id").
		Where("id = ?", orderID).
		Take(&orderRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	var customerRow struct {
		Email string
	}
	if err := r.db.Model(&models.Customer{}).
		Select("email").
		Where("id = ?", orderRow.CustomerID).
		Take(&customerRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return customerRow.Email, nil
}

// UpdateStatus updates the order status plus any extra columns.
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}
