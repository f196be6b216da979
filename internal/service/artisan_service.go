package service

import (
	"strings"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"gorm.io/gorm"
)

// ArtisanService handles vendor applications and their review.
type ArtisanService struct {
	artisanRepo repository.ArtisanRepository
}

// NewArtisanService creates an artisan service.
func NewArtisanService(artisanRepo repository.ArtisanRepository) *ArtisanService {
	return &ArtisanService{artisanRepo: artisanRepo}
}

// ArtisanDocumentInput is one supporting document.
type ArtisanDocumentInput struct {
	Kind string
	URL  string
}

// ApplyInput is the vendor application request.
type ApplyInput struct {
	CustomerID uint
	ShopName   string
	Bio        string
	Region     string
	Documents  []ArtisanDocumentInput
}

// Apply submits a vendor application. One application per customer; a
// rejected applicant may resubmit, which resets the profile to pending.
func (s *ArtisanService) Apply(input ApplyInput) (*models.ArtisanProfile, error) {
	if input.CustomerID == 0 {
		return nil, ErrNotFound
	}
	shopName := strings.TrimSpace(input.ShopName)
	if shopName == "" {
		return nil, ErrArtisanInvalid
	}
	docs := make([]models.ArtisanDocument, 0, len(input.Documents))
	for _, d := range input.Documents {
		kind := strings.TrimSpace(d.Kind)
		url := strings.TrimSpace(d.URL)
		if kind == "" || url == "" {
			return nil, ErrArtisanInvalid
		}
		docs = append(docs, models.ArtisanDocument{Kind: kind, URL: url})
	}

	existing, err := s.artisanRepo.GetProfileByCustomer(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != constants.ArtisanStatusRejected {
		return nil, ErrArtisanExists
	}

	now := time.Now()
	var profile *models.ArtisanProfile
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		artisanRepo := s.artisanRepo.WithTx(tx)
		if existing != nil {
			existing.ShopName = shopName
			existing.Bio = strings.TrimSpace(input.Bio)
			existing.Region = strings.TrimSpace(input.Region)
			existing.Status = constants.ArtisanStatusPending
			existing.ReviewNote = ""
			existing.ReviewedAt = nil
			existing.UpdatedAt = now
			if err := artisanRepo.UpdateProfile(existing); err != nil {
				return err
			}
			profile = existing
		} else {
			row := &models.ArtisanProfile{
				CustomerID: input.CustomerID,
				ShopName:   shopName,
				Bio:        strings.TrimSpace(input.Bio),
				Region:     strings.TrimSpace(input.Region),
				Status:     constants.ArtisanStatusPending,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := artisanRepo.CreateProfile(row); err != nil {
				return err
			}
			profile = row
		}
		for i := range docs {
			docs[i].ArtisanID = profile.ID
			docs[i].CreatedAt = now
			if err := artisanRepo.AddDocument(&docs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	profile.Documents = docs
	return profile, nil
}

// GetByCustomer fetches a customer's own application.
func (s *ArtisanService) GetByCustomer(customerID uint) (*models.ArtisanProfile, error) {
	if customerID == 0 {
		return nil, ErrNotFound
	}
	profile, err := s.artisanRepo.GetProfileByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	docs, err := s.artisanRepo.ListDocuments(profile.ID)
	if err != nil {
		return nil, err
	}
	profile.Documents = docs
	return profile, nil
}

// ListForAdmin returns applications for review.
func (s *ArtisanService) ListForAdmin(filter repository.ArtisanListFilter) ([]models.ArtisanProfile, int64, error) {
	return s.artisanRepo.ListProfiles(filter)
}

// GetForAdmin fetches an application with its documents.
func (s *ArtisanService) GetForAdmin(id uint) (*models.ArtisanProfile, error) {
	profile, err := s.artisanRepo.GetProfileByID(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	docs, err := s.artisanRepo.ListDocuments(profile.ID)
	if err != nil {
		return nil, err
	}
	profile.Documents = docs
	return profile, nil
}

// Review settles a pending application as verified or rejected.
func (s *ArtisanService) Review(id uint, approve bool, note string) (*models.ArtisanProfile, error) {
	profile, err := s.artisanRepo.GetProfileByID(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	if profile.Status != constants.ArtisanStatusPending {
		return nil, ErrArtisanReviewed
	}

	now := time.Now()
	if approve {
		profile.Status = constants.ArtisanStatusVerified
	} else {
		profile.Status = constants.ArtisanStatusRejected
	}
	profile.ReviewNote = strings.TrimSpace(note)
	profile.ReviewedAt = &now
	profile.UpdatedAt = now
	if err := s.artisanRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
