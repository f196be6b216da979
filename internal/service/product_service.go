package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/cache"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/logger"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"github.com/shopspring/decimal"
)

const productCacheTTL = 5 * time.Minute

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// ProductService manages the catalog.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	artisanRepo  repository.ArtisanRepository
}

// NewProductService creates a product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository, artisanRepo repository.ArtisanRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		artisanRepo:  artisanRepo,
	}
}

// ProductInput is the create/update product request.
type ProductInput struct {
	Title       string
	Description string
	CategoryID  uint
	BrandID     *uint
	ArtisanID   *uint
	Price       decimal.Decimal
	Stock       int
	Images      []string
	Status      string
	SortOrder   int
}

// ListPublic returns active products for the storefront.
func (s *ProductService) ListPublic(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// ListAdmin returns all products for the back office.
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// GetPublic fetches an active product, read-through cached to absorb
// hot storefront detail pages.
func (s *ProductService) GetPublic(id uint) (*models.Product, error) {
	ctx := context.Background()
	key := productCacheKey(id)
	var cached models.Product
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		if !isProductActive(&cached) {
			return nil, ErrProductNotFound
		}
		return &cached, nil
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !isProductActive(product) {
		return nil, ErrProductNotFound
	}
	if err := cache.SetJSON(ctx, key, product, productCacheTTL); err != nil {
		logger.Warnw("product_cache_set_failed", "product_id", id, "error", err)
	}
	return product, nil
}

// GetAdmin fetches any product.
func (s *ProductService) GetAdmin(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create adds a product to the catalog.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	product := models.Product{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
		ArtisanID:   input.ArtisanID,
		Price:       models.NewMoneyFromDecimal(input.Price),
		Stock:       input.Stock,
		Images:      models.StringArray(input.Images),
		Status:      resolveProductStatus(input.Status),
		SortOrder:   input.SortOrder,
	}
	if err := s.productRepo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update edits a product. Existing order lines keep their snapshots.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	product.Title = strings.TrimSpace(input.Title)
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.BrandID = input.BrandID
	product.ArtisanID = input.ArtisanID
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.Stock = input.Stock
	product.Images = models.StringArray(input.Images)
	product.Status = resolveProductStatus(input.Status)
	product.SortOrder = input.SortOrder
	product.Category = nil
	product.Brand = nil

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateCache(id)
	return product, nil
}

// Delete soft-deletes a product. Cart lines pointing at it are purged
// lazily the next time the cart is read.
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(id)
	return nil
}

// SetStatus flips a product between active and inactive.
func (s *ProductService) SetStatus(id uint, status string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	resolved := resolveProductStatus(status)
	product.Status = resolved
	product.Category = nil
	product.Brand = nil
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateCache(id)
	return product, nil
}

func (s *ProductService) invalidateCache(id uint) {
	if err := cache.Del(context.Background(), productCacheKey(id)); err != nil {
		logger.Warnw("product_cache_del_failed", "product_id", id, "error", err)
	}
}

func (s *ProductService) validateInput(input *ProductInput) error {
	if strings.TrimSpace(input.Title) == "" || input.CategoryID == 0 {
		return ErrNotFound
	}
	if input.Price.IsNegative() {
		return ErrInvalidQuantity
	}
	if input.Stock < 0 {
		return ErrInvalidQuantity
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	if input.BrandID != nil {
		brand, err := s.brandRepo.GetByID(*input.BrandID)
		if err != nil {
			return err
		}
		if brand == nil || brand.CategoryID != input.CategoryID {
			return ErrNotFound
		}
	}
	if input.ArtisanID != nil {
		profile, err := s.artisanRepo.GetProfileByID(*input.ArtisanID)
		if err != nil {
			return err
		}
		if profile == nil || profile.Status != constants.ArtisanStatusVerified {
			return ErrArtisanInvalid
		}
	}
	return nil
}

func resolveProductStatus(status string) string {
	if strings.EqualFold(strings.TrimSpace(status), constants.ProductStatusInactive) {
		return constants.ProductStatusInactive
	}
	return constants.ProductStatusActive
}
