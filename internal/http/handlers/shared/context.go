package shared

import (
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint reads a uint value set by the auth middleware, answering
// the request itself when the value is missing or malformed.
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identity", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identity", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "invalid identity type", nil)
		return 0, false
	}
}
