package public

import (
	"errors"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the customer sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// LoginRequest is the customer sign-in payload.
type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// ChangePasswordRequest rotates the customer password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateProfileRequest patches the customer profile. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
}

func customerView(customer *models.Customer) gin.H {
	return gin.H{
		"id":      customer.ID,
		"name":    customer.Name,
		"email":   customer.Email,
		"phone":   customer.Phone,
		"address": customer.Address,
		"city":    customer.City,
		"status":  customer.Status,
	}
}

func authView(customer *models.Customer, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"customer":   customerView(customer),
		"token":      token,
		"expires_at": expiresAt,
	}
}

// Register creates a customer account and signs it in.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	customer, token, expiresAt, err := h.CustomerAuthService.Register(service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "email already registered", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "registration failed", err)
		}
		return
	}

	response.Success(c, authView(customer, token, expiresAt))
}

// Login signs a customer in.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	customer, token, expiresAt, err := h.CustomerAuthService.LoginWithRememberMe(req.Email, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
		case errors.Is(err, service.ErrCustomerDisabled):
			respondError(c, response.CodeForbidden, "account disabled", nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}

	response.Success(c, authView(customer, token, expiresAt))
}

// GetProfile returns the signed-in customer.
func (h *Handler) GetProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerAuthService.GetCustomerByID(customerID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "customer not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "profile fetch failed", err)
		return
	}
	response.Success(c, customerView(customer))
}

// UpdateProfile patches the signed-in customer's contact details.
func (h *Handler) UpdateProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	customer, err := h.CustomerAuthService.UpdateProfile(customerID, req.Name, req.Phone, req.Address, req.City)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "customer not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "profile update failed", err)
		return
	}
	response.Success(c, customerView(customer))
}

// ChangePassword rotates the signed-in customer's password and revokes
// outstanding tokens.
func (h *Handler) ChangePassword(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.CustomerAuthService.ChangePassword(customerID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "current password incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "customer not found", nil)
		default:
			respondError(c, response.CodeInternal, "password change failed", err)
		}
		return
	}
	response.Success(c, gin.H{"changed": true})
}
