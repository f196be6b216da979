package public

import (
	"strconv"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest adds or adjusts one cart line.
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// GetCart returns the customer's priced cart.
func (h *Handler) GetCart(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	summary, err := h.CartService.GetCart(customerID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, summary)
}

// AddCartItem adds quantity to a cart line, creating it when absent.
func (h *Handler) AddCartItem(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.CartService.AddItem(service.AddCartItemInput{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		ClientIP:   c.ClientIP(),
	}); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"added": true})
}

// UpdateCartItem sets a cart line's quantity; zero or less removes it.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.CartService.UpdateQuantity(customerID, uint(productID), req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// RemoveCartItem deletes a cart line. Removing an absent line succeeds.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	if err := h.CartService.RemoveItem(customerID, uint(productID)); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// ClearCart empties the customer's cart.
func (h *Handler) ClearCart(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(customerID); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
