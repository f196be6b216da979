package public

import (
	"errors"
	"strconv"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// InitiatePayment opens a hosted checkout session for a pending order.
func (h *Handler) InitiatePayment(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	result, err := h.PaymentService.InitiatePayment(c.Request.Context(), uint(orderID), customerID)
	if err != nil {
		respondPaymentInitiateError(c, err)
		return
	}
	response.Success(c, result)
}

// PaymentCallback lands the customer back from the gateway. The reference
// is verified server side; the redirect query is never trusted for amounts.
func (h *Handler) PaymentCallback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}
	if reference == "" {
		respondError(c, response.CodeBadRequest, "missing payment reference", nil)
		return
	}
	payment, err := h.PaymentService.ConfirmPayment(c.Request.Context(), reference)
	if err != nil {
		respondPaymentConfirmError(c, err)
		return
	}
	response.Success(c, payment)
}

// GetOrderPayment returns the settled payment and attempt history of one
// of the customer's orders.
func (h *Handler) GetOrderPayment(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	if _, err := h.OrderService.GetOrderByCustomer(uint(orderID), customerID); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	payment, err := h.PaymentService.GetPaymentByOrder(uint(orderID))
	if err != nil {
		respondError(c, response.CodeInternal, "payment fetch failed", err)
		return
	}
	intents, err := h.PaymentService.ListIntentsByOrder(uint(orderID))
	if err != nil {
		respondError(c, response.CodeInternal, "payment fetch failed", err)
		return
	}
	response.Success(c, gin.H{"payment": payment, "intents": intents})
}
