package admin

import (
	"errors"
	"strconv"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest is the create/update payload for categories.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// BrandRequest is the create/update payload for brands.
type BrandRequest struct {
	Name       string `json:"name" binding:"required"`
	CategoryID uint   `json:"category_id" binding:"required"`
}

// ListCategories returns all categories for the back office.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "category fetch failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// CreateCategory adds a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	category, err := h.CategoryService.CreateCategory(service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			respondError(c, response.CodeConflict, "category name already exists", nil)
			return
		}
		respondError(c, response.CodeInternal, "category creation failed", err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory edits a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	category, err := h.CategoryService.UpdateCategory(id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrCategoryExists):
			respondError(c, response.CodeConflict, "category name already exists", nil)
		default:
			respondError(c, response.CodeInternal, "category update failed", err)
		}
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes an empty category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeConflict, "category still has products", nil)
		default:
			respondError(c, response.CodeInternal, "category deletion failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "category deleted", nil)
}

// ListBrands returns brands, optionally scoped by ?category_id.
func (h *Handler) ListBrands(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	brands, err := h.CategoryService.ListBrands(uint(categoryID))
	if err != nil {
		respondError(c, response.CodeInternal, "brand fetch failed", err)
		return
	}
	response.Success(c, gin.H{"brands": brands})
}

// CreateBrand adds a brand under a category.
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	brand, err := h.CategoryService.CreateBrand(service.BrandInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrBrandExists):
			respondError(c, response.CodeConflict, "brand already exists in category", nil)
		default:
			respondError(c, response.CodeInternal, "brand creation failed", err)
		}
		return
	}
	response.Success(c, brand)
}

// UpdateBrand edits a brand.
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	brand, err := h.CategoryService.UpdateBrand(id, service.BrandInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "brand not found", nil)
		case errors.Is(err, service.ErrBrandExists):
			respondError(c, response.CodeConflict, "brand already exists in category", nil)
		default:
			respondError(c, response.CodeInternal, "brand update failed", err)
		}
		return
	}
	response.Success(c, brand)
}

// DeleteBrand removes an unused brand.
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.DeleteBrand(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "brand not found", nil)
		case errors.Is(err, service.ErrBrandInUse):
			respondError(c, response.CodeConflict, "brand still has products", nil)
		default:
			respondError(c, response.CodeInternal, "brand deletion failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "brand deleted", nil)
}
