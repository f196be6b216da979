package public

import (
	handlershared "github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getCustomerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "customer_id")
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
