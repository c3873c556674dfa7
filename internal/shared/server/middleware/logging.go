package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"interviewiq-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		userID, _ := c.Get("userId")
		resumeID, _ := c.Get("resumeId")
		interviewID, _ := c.Get("interviewId")
		statusTransition := ""
		if raw, ok := c.Get("statusTransition"); ok {
			if s, ok := raw.(string); ok {
				statusTransition = s
			}
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":        reqID,
			"method":            c.Request.Method,
			"path":              c.Request.URL.Path,
			"status":            status,
			"status_transition": statusTransition,
			"duration_ms":       float64(latency.Microseconds()) / 1000.0,
			"user_id":           userID,
			"resume_id":         resumeID,
			"interview_id":      interviewID,
			"client_ip":         c.ClientIP(),
			"user_agent":        c.Request.UserAgent(),
		})
	}
}
