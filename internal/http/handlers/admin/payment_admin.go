package admin

import (
	"strconv"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListPayments pages through the payment ledger with optional filters.
func (h *Handler) ListPayments(c *gin.Context) {
	page, pageSize := pageQuery(c)
	customerID, _ := strconv.ParseUint(c.Query("customer_id"), 10, 64)
	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)

	payments, total, err := h.PaymentService.ListPaymentsForAdmin(repository.PaymentListFilter{
		Page:        page,
		PageSize:    pageSize,
		CustomerID:  uint(customerID),
		OrderID:     uint(orderID),
		Channel:     c.Query("channel"),
		Reference:   c.Query("reference"),
		CreatedFrom: parseTimeQuery(c, "created_from"),
		CreatedTo:   parseTimeQuery(c, "created_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "payment fetch failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"payments": payments}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages(total, pageSize),
	})
}
