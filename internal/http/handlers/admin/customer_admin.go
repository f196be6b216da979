package admin

import (
	"errors"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCustomers pages through registered customers.
func (h *Handler) ListCustomers(c *gin.Context) {
	page, pageSize := pageQuery(c)
	customers, total, err := h.AdminService.ListCustomers(repository.CustomerListFilter{
		Page:        page,
		PageSize:    pageSize,
		Keyword:     c.Query("keyword"),
		Status:      c.Query("status"),
		CreatedFrom: parseTimeQuery(c, "created_from"),
		CreatedTo:   parseTimeQuery(c, "created_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "customer fetch failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"customers": customers}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages(total, pageSize),
	})
}

// SetCustomerStatus enables or disables a customer account. Disabling
// revokes the customer's live sessions.
func (h *Handler) SetCustomerStatus(c *gin.Context) {
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

	customer, err := h.AdminService.SetCustomerStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "customer not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "customer status change failed", err)
		return
	}
	requestLog(c).Infow("admin_customer_status_changed",
		"customer_id", customer.ID,
		"status", customer.Status,
	)
	response.Success(c, customer)
}
