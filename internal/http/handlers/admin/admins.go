package admin

import (
	"errors"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateAdminRequest provisions a back-office account.
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// ListAdmins returns all back-office accounts.
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AdminService.ListAdmins()
	if err != nil {
		respondError(c, response.CodeInternal, "admin fetch failed", err)
		return
	}
	views := make([]gin.H, 0, len(admins))
	for i := range admins {
		views = append(views, adminView(&admins[i]))
	}
	response.Success(c, gin.H{"admins": views})
}

// CreateAdmin provisions a back-office account.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}
	admin, err := h.AdminService.CreateAdmin(service.CreateAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminExists):
			respondError(c, response.CodeConflict, "username already taken", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "admin creation failed", err)
		}
		return
	}
	requestLog(c).Infow("admin_account_created", "admin_id", admin.ID, "role", admin.Role)
	response.Success(c, adminView(admin))
}

// SetAdminRole changes a back-office account's role.
func (h *Handler) SetAdminRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	admin, err := h.AdminService.SetAdminRole(id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			respondError(c, response.CodeNotFound, "admin not found", nil)
		case errors.Is(err, service.ErrAdminLastAdmin):
			respondError(c, response.CodeConflict, "cannot demote the last admin", nil)
		default:
			respondError(c, response.CodeInternal, "role change failed", err)
		}
		return
	}
	requestLog(c).Infow("admin_role_changed", "admin_id", admin.ID, "role", admin.Role)
	response.Success(c, adminView(admin))
}

// DeleteAdmin removes a back-office account.
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AdminService.DeleteAdmin(id); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			respondError(c, response.CodeNotFound, "admin not found", nil)
		case errors.Is(err, service.ErrAdminLastAdmin):
			respondError(c, response.CodeConflict, "cannot remove the last admin", nil)
		default:
			respondError(c, response.CodeInternal, "admin deletion failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "admin deleted", nil)
}
