package server

import (
	"time"

	"ebuy/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"route":   c.FullPath(),
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		fields["idempotency_key"] = key
	}
	utils.Info("HTTP Request", fields)
}
