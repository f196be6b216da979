package public

import (
	"errors"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ArtisanApplyRequest is the vendor application payload.
type ArtisanApplyRequest struct {
	ShopName  string `json:"shop_name" binding:"required"`
	Bio       string `json:"bio"`
	Region    string `json:"region"`
	Documents []struct {
		Kind string `json:"kind"`
		URL  string `json:"url"`
	} `json:"documents"`
}

// ApplyAsArtisan submits (or resubmits after rejection) a vendor
// application for the signed-in customer.
func (h *Handler) ApplyAsArtisan(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req ArtisanApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	docs := make([]service.ArtisanDocumentInput, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, service.ArtisanDocumentInput{Kind: d.Kind, URL: d.URL})
	}
	profile, err := h.ArtisanService.Apply(service.ApplyInput{
		CustomerID: customerID,
		ShopName:   req.ShopName,
		Bio:        req.Bio,
		Region:     req.Region,
		Documents:  docs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArtisanInvalid):
			respondError(c, response.CodeBadRequest, "invalid application", nil)
		case errors.Is(err, service.ErrArtisanExists):
			respondError(c, response.CodeConflict, "application already submitted", nil)
		default:
			respondError(c, response.CodeInternal, "application failed", err)
		}
		return
	}
	response.Success(c, profile)
}

// GetArtisanApplication returns the signed-in customer's application.
func (h *Handler) GetArtisanApplication(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	profile, err := h.ArtisanService.GetByCustomer(customerID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "no application found", nil)
			return
		}
		respondError(c, response.CodeInternal, "application fetch failed", err)
		return
	}
	response.Success(c, profile)
}
