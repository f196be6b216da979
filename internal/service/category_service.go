package service

import (
	"strings"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
)

// CategoryService manages categories and the brands nested under them.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService creates a category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		productRepo:  productRepo,
	}
}

// CategoryInput is the create/update category request.
type CategoryInput struct {
	Name        string
	Description string
	SortOrder   int
}

// ListCategories returns all categories.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.ListAll()
}

// GetCategory fetches a category.
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// CreateCategory creates a category. Names are unique.
func (s *CategoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNotFound
	}
	existing, err := s.categoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		SortOrder:   input.SortOrder,
	}
	if err := s.categoryRepo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates a category.
func (s *CategoryService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name != "" && !strings.EqualFold(name, category.Name) {
		existing, err := s.categoryRepo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, ErrCategoryExists
		}
		category.Name = name
	}
	category.Description = strings.TrimSpace(input.Description)
	category.SortOrder = input.SortOrder

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category that has no products.
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	_, total, err := s.productRepo.List(repository.ProductListFilter{CategoryID: id, PageSize: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}

// BrandInput is the create/update brand request.
type BrandInput struct {
	Name       string
	CategoryID uint
}

// ListBrands returns brands, optionally scoped to a category.
func (s *CategoryService) ListBrands(categoryID uint) ([]models.Brand, error) {
	if categoryID != 0 {
		return s.brandRepo.ListByCategory(categoryID)
	}
	return s.brandRepo.ListAll()
}

// CreateBrand creates a brand. The (name, category) pair is unique.
func (s *CategoryService) CreateBrand(input BrandInput) (*models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 {
		return nil, ErrNotFound
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	existing, err := s.brandRepo.GetByNameAndCategory(name, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrBrandExists
	}

	brand := models.Brand{
		Name:       name,
		CategoryID: input.CategoryID,
	}
	if err := s.brandRepo.Create(&brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// UpdateBrand renames a brand or moves it to another category.
func (s *CategoryService) UpdateBrand(id uint, input BrandInput) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = brand.Name
	}
	categoryID := input.CategoryID
	if categoryID == 0 {
		categoryID = brand.CategoryID
	}
	if name != brand.Name || categoryID != brand.CategoryID {
		existing, err := s.brandRepo.GetByNameAndCategory(name, categoryID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != brand.ID {
			return nil, ErrBrandExists
		}
	}

	brand.Name = name
	brand.CategoryID = categoryID
	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand removes a brand that has no products.
func (s *CategoryService) DeleteBrand(id uint) error {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrNotFound
	}

	_, total, err := s.productRepo.List(repository.ProductListFilter{BrandID: id, PageSize: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrBrandInUse
	}
	return s.brandRepo.Delete(id)
}
