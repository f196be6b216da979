package public

import (
	"errors"
	"strconv"

	handlershared "github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/handlers/shared"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// Checkout turns the customer's cart into a pending order.
func (h *Handler) Checkout(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Checkout(service.CheckoutInput{
		CustomerID: customerID,
		ClientIP:   c.ClientIP(),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders pages through the customer's order history.
func (h *Handler) ListOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersByCustomer(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customerID,
		Status:     c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetOrder returns one of the customer's orders with its lines.
func (h *Handler) GetOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.GetOrderByCustomer(uint(orderID), customerID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	items, err := h.OrderService.ListOrderLines(order.ID, customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.Success(c, gin.H{"order": order, "items": items})
}

// CancelOrder cancels a pending order and restores its stock.
func (h *Handler) CancelOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	order, err := h.OrderService.CancelOrderByCustomer(uint(orderID), customerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "order can no longer be cancelled", nil)
		default:
			respondError(c, response.CodeInternal, "order cancellation failed", err)
		}
		return
	}
	response.Success(c, order)
}
