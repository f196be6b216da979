package admin

import (
	"strconv"

	handlershared "github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/handlers/shared"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "admin_id")
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// parseIDParam reads a positive uint path parameter. It writes the error
// response itself when the value is missing or malformed.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || raw == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(raw), true
}

func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return normalizePagination(page, pageSize)
}

func totalPages(total int64, pageSize int) int64 {
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
