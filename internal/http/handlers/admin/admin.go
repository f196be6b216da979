package admin

import (
	"errors"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the back-office login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest rotates the signed-in admin's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func adminView(admin *models.Admin) gin.H {
	return gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"email":         admin.Email,
		"role":          admin.Role,
		"last_login_at": admin.LastLoginAt,
		"created_at":    admin.CreatedAt,
	}
}

// Login authenticates a back-office account and issues a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	requestLog(c).Infow("admin_login", "admin_id", admin.ID, "username", admin.Username)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"user":       adminView(admin),
	})
}

// GetProfile returns the signed-in back-office account.
func (h *Handler) GetProfile(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "profile fetch failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "admin not found", nil)
		return
	}
	response.Success(c, adminView(admin))
}

// ChangePassword rotates the signed-in admin's password and revokes
// previously issued tokens.
func (h *Handler) ChangePassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "current password incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "password change failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "password changed", nil)
}
