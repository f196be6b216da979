package admin

import (
	"errors"
	"strconv"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest is the create/update payload for products. Price is a
// decimal string, e.g. "350.00".
type ProductRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	BrandID     *uint    `json:"brand_id"`
	ArtisanID   *uint    `json:"artisan_id"`
	Price       string   `json:"price" binding:"required"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
	SortOrder   int      `json:"sort_order"`
}

func (r *ProductRequest) toInput() (service.ProductInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return service.ProductInput{}, err
	}
	return service.ProductInput{
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		BrandID:     r.BrandID,
		ArtisanID:   r.ArtisanID,
		Price:       price,
		Stock:       r.Stock,
		Images:      r.Images,
		Status:      r.Status,
		SortOrder:   r.SortOrder,
	}, nil
}

// ListProducts pages through the full catalog, inactive products included.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := pageQuery(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	brandID, _ := strconv.ParseUint(c.Query("brand_id"), 10, 64)
	artisanID, _ := strconv.ParseUint(c.Query("artisan_id"), 10, 64)

	products, total, err := h.ProductService.ListAdmin(repository.ProductListFilter{
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
		TotalPage: totalPages(total, pageSize),
	})
}

// GetProduct fetches a product regardless of status.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdmin(id)
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

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", nil)
		return
	}
	product, err := h.ProductService.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeBadRequest, "category or brand not found", nil)
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "price and stock must not be negative", nil)
		case errors.Is(err, service.ErrArtisanInvalid):
			respondError(c, response.CodeBadRequest, "artisan is not verified", nil)
		default:
			respondError(c, response.CodeInternal, "product creation failed", err)
		}
		return
	}
	response.Success(c, product)
}

// UpdateProduct edits a product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", nil)
		return
	}
	product, err := h.ProductService.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeBadRequest, "category or brand not found", nil)
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "price and stock must not be negative", nil)
		case errors.Is(err, service.ErrArtisanInvalid):
			respondError(c, response.CodeBadRequest, "artisan is not verified", nil)
		default:
			respondError(c, response.CodeInternal, "product update failed", err)
		}
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a product from the catalog.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product deletion failed", err)
		return
	}
	response.SuccessWithMsg(c, "product deleted", nil)
}

// SetProductStatus flips a product between active and inactive.
func (h *Handler) SetProductStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	product, err := h.ProductService.SetStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product status change failed", err)
		return
	}
	response.Success(c, product)
}
