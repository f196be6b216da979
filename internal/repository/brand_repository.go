package repository

import (
	"errors"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"gorm.io/gorm"
)

// BrandRepository is the brand data access interface.
type BrandRepository interface {
	Create(brand *models.Brand) error
	Update(brand *models.Brand) error
	Delete(id uint) error
	GetByID(id uint) (*models.Brand, error)
	GetByNameAndCategory(name string, categoryID uint) (*models.Brand, error)
	ListByCategory(categoryID uint) ([]models.Brand, error)
	ListAll() ([]models.Brand, error)
	WithTx(tx *gorm.DB) *GormBrandRepository
}

// GormBrandRepository is the GORM implementation.
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository creates a brand repository.
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormBrandRepository) WithTx(tx *gorm.DB) *GormBrandRepository {
	if tx == nil {
		return r
	}
	return &GormBrandRepository{db: tx}
}

// Create inserts a brand.
func (r *GormBrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// Update saves a brand.
func (r *GormBrandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}

// Delete soft-deletes a brand.
func (r *GormBrandRepository) Delete(id uint) error {
	return r.db.Delete(&models.Brand{}, id).Error
}

// GetByID fetches a brand, nil when absent.
func (r *GormBrandRepository) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.Preload("Category").First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// GetByNameAndCategory fetches a brand by its unique pair, nil when absent.
func (r *GormBrandRepository) GetByNameAndCategory(name string, categoryID uint) (*models.Brand, error) {
	var brand models.Brand
	result := r.db.Where("name = ? AND category_id = ?", name, categoryID).Limit(1).Find(&brand)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &brand, nil
}

// ListByCategory returns the brands of one category.
func (r *GormBrandRepository) ListByCategory(categoryID uint) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Where("category_id = ?", categoryID).Order("name asc").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// ListAll returns every brand with its category.
func (r *GormBrandRepository) ListAll() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Preload("Category").Order("id asc").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}
