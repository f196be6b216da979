package admin

import (
	"errors"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ArtisanReviewRequest approves or rejects a vendor application.
type ArtisanReviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// ListArtisans pages through vendor applications.
func (h *Handler) ListArtisans(c *gin.Context) {
	page, pageSize := pageQuery(c)
	profiles, total, err := h.ArtisanService.ListForAdmin(repository.ArtisanListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Region:   c.Query("region"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "artisan fetch failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"artisans": profiles}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages(total, pageSize),
	})
}

// GetArtisan fetches one application with its documents.
func (h *Handler) GetArtisan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	profile, err := h.ArtisanService.GetForAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "artisan application not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "artisan fetch failed", err)
		return
	}
	response.Success(c, profile)
}

// ReviewArtisan verifies or rejects a pending application.
func (h *Handler) ReviewArtisan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ArtisanReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	profile, err := h.ArtisanService.Review(id, req.Approve, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "artisan application not found", nil)
		case errors.Is(err, service.ErrArtisanReviewed):
			respondError(c, response.CodeConflict, "application already reviewed", nil)
		default:
			respondError(c, response.CodeInternal, "artisan review failed", err)
		}
		return
	}
	requestLog(c).Infow("admin_artisan_reviewed",
		"artisan_id", profile.ID,
		"status", profile.Status,
	)
	response.Success(c, profile)
}
