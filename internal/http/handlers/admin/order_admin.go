package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// parseTimeQuery reads an RFC 3339 query parameter, nil when absent.
func parseTimeQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// ListOrders pages through all orders with optional filters.
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := pageQuery(c)
	invoiceNo, _ := strconv.ParseInt(c.Query("invoice_no"), 10, 64)
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      c.Query("status"),
		InvoiceNo:   invoiceNo,
		CreatedFrom: parseTimeQuery(c, "created_from"),
		CreatedTo:   parseTimeQuery(c, "created_to"),
	}

	orders, total, err := h.OrderService.ListOrdersForAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages(total, pageSize),
	})
}

// GetOrder returns any order with its lines and payment trail.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderForAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	items, err := h.OrderService.ListOrderLines(order.ID, order.CustomerID)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	intents, err := h.PaymentService.ListIntentsByOrder(order.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	payment, err := h.PaymentService.GetPaymentByOrder(order.ID)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.Success(c, gin.H{
		"order":   order,
		"items":   items,
		"intents": intents,
		"payment": payment,
	})
}

// UpdateOrderStatus advances an order along the fulfilment flow.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
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

	order, err := h.OrderService.UpdateOrderStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "status transition not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "order status change failed", err)
		}
		return
	}
	requestLog(c).Infow("admin_order_status_changed",
		"order_id", order.ID,
		"invoice_no", order.InvoiceNo,
		"status", order.Status,
	)
	response.Success(c, order)
}
