package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockroomhq/stockroom/backend/internal/util"
)

// RequestLogger logs basic request information along with the request_id and
// the employee the request was resolved to.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		entry := GetRequestLogger(c)
		if id := GetEmployeeID(c); id != "" {
			entry = entry.WithField("employee", id)
		}
		entry.WithFields(map[string]interface{}{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    util.SanitizeForLog(c.Request.URL.Path),
			"latency": latency.String(),
			"client":  c.ClientIP(),
		}).Info("handled request")
	}
}
