package repository

import (
	"errors"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"gorm.io/gorm"
)

// ArtisanRepository is the artisan vendor data access interface.
type ArtisanRepository interface {
	CreateProfile(profile *models.ArtisanProfile) error
	UpdateProfile(profile *models.ArtisanProfile) error
	GetProfileByID(id uint) (*models.ArtisanProfile, error)
	GetProfileByCustomer(customerID uint) (*models.ArtisanProfile, error)
	ListProfiles(filter ArtisanListFilter) ([]models.ArtisanProfile, int64, error)
	AddDocument(doc *models.ArtisanDocument) error
	ListDocuments(artisanID uint) ([]models.ArtisanDocument, error)
	WithTx(tx *gorm.DB) *GormArtisanRepository
}

// GormArtisanRepository is the GORM implementation.
type GormArtisanRepository struct {
	db *gorm.DB
}

// NewArtisanRepository creates an artisan repository.
func NewArtisanRepository(db *gorm.DB) *GormArtisanRepository {
	return &GormArtisanRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormArtisanRepository) WithTx(tx *gorm.DB) *GormArtisanRepository {
	if tx == nil {
		return r
	}
	return &GormArtisanRepository{db: tx}
}

// CreateProfile inserts a profile.
func (r *GormArtisanRepository) CreateProfile(profile *models.ArtisanProfile) error {
	return r.db.Create(profile).Error
}

// UpdateProfile saves a profile.
func (r *GormArtisanRepository) UpdateProfile(profile *models.ArtisanProfile) error {
	return r.db.Save(profile).Error
}

// GetProfileByID fetches a profile with documents, nil when absent.
func (r *GormArtisanRepository) GetProfileByID(id uint) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	if err := r.db.Preload("Documents").First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByCustomer fetches a customer's profile, nil when absent.
func (r *GormArtisanRepository) GetProfileByCustomer(customerID uint) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	result := r.db.Preload("Documents").Where("customer_id = ?", customerID).Limit(1).Find(&profile)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &profile, nil
}

// ListProfiles returns a filtered profile page for review.
func (r *GormArtisanRepository) ListProfiles(filter ArtisanListFilter) ([]models.ArtisanProfile, int64, error) {
	query := r.db.Model(&models.ArtisanProfile{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Search != "" {
		condition, argCount := buildSearchLikeCondition(query, []string{"shop_name", "bio"})
		if condition != "" {
			query = query.Where(condition, repeatLikeArgs("%"+filter.Search+"%", argCount)...)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var profiles []models.ArtisanProfile
	if err := query.Preload("Documents").Order("id desc").Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// AddDocument attaches a document to a profile.
func (r *GormArtisanRepository) AddDocument(doc *models.ArtisanDocument) error {
	return r.db.Create(doc).Error
}

// ListDocuments returns a profile's documents.
func (r *GormArtisanRepository) ListDocuments(artisanID uint) ([]models.ArtisanDocument, error) {
	var docs []models.ArtisanDocument
	if err := r.db.Where("artisan_id = ?", artisanID).Order("id asc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
