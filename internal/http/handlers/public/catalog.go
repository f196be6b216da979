package public

import (
	"errors"
	"strconv"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	handlershared "github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/handlers/shared"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories returns the category tree roots.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "category fetch failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// ListBrands returns brands, optionally scoped to a category.
func (h *Handler) ListBrands(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	brands, err := h.CategoryService.ListBrands(uint(categoryID))
	if err != nil {
		respondError(c, response.CodeInternal, "brand fetch failed", err)
		return
	}
	response.Success(c, gin.H{"brands": brands})
}

// ListProducts returns the public catalog page.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	brandID, _ := strconv.ParseUint(c.Query("brand_id"), 10, 64)
	artisanID, _ := strconv.ParseUint(c.Query("artisan_id"), 10, 64)

	products, total, err := h.ProductService.ListPublic(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: uint(categoryID),
		BrandID:    uint(brandID),
		ArtisanID:  uint(artisanID),
		Search:     c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"products": products}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetProduct returns one active product.
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	product, err := h.ProductService.GetPublic(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, product)
}
