package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interviewiq-backend/internal/interviews"
	"interviewiq-backend/internal/resumes"
	"interviewiq-backend/internal/shared/config"
	"interviewiq-backend/internal/shared/metrics"
	"interviewiq-backend/internal/shared/server/middleware"
	"interviewiq-backend/internal/shared/server/respond"
	"interviewiq-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	UsersHandler      *users.Handler
	ResumesHandler    *resumes.Handler
	InterviewsHandler *interviews.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}
	if deps.InterviewsHandler != nil {
		deps.InterviewsHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitConfig keeps the LLM-backed endpoints on a tighter budget than
// plain reads.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"AI":      {Rate: 0.5, Burst: 5},
			"DEFAULT": {Rate: 10, Burst: 30},
		},
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return "DEFAULT"
			}
			path := c.FullPath()
			switch {
			case path == "/api/v1/resumes",
				strings.HasSuffix(path, "/submit-answer"),
				strings.HasSuffix(path, "/end"):
				return "AI"
			default:
				return "DEFAULT"
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
