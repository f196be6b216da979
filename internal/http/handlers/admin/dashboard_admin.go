package admin

import (
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the back-office landing metrics.
func (h *Handler) Dashboard(c *gin.Context) {
	overview, err := h.DashboardService.GetOverview(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard fetch failed", err)
		return
	}
	response.Success(c, overview)
}
