package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/performance"
	"jobtracker-backend/internal/services/health"
	"jobtracker-backend/internal/shared/config"
	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/server/respond"
)

const (
	healthPath  = "/api/v1/health"
	metricsPath = "/metrics"
)

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config             config.Config
	Secret             []byte
	JobsHandler        *jobs.Handler
	GoalsHandler       *goals.Handler
	PerformanceHandler *performance.Handler
	Health             *health.Service
	Limiter            *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(middleware.AuthConfig{
			Secret:      deps.Secret,
			PublicPaths: []string{healthPath, metricsPath},
		}),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:      deps.Limiter,
			DefaultGroup: middleware.GroupDefault,
			GroupFor: middleware.RouteGroups(map[string]string{
				http.MethodGet + " /api/v1/analytics/performance": middleware.GroupAnalytics,
				http.MethodPost + " /api/v1/jobs/import":          middleware.GroupImport,
			}),
			Rules: map[string]middleware.RateLimitRule{
				middleware.GroupAnalytics: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
				middleware.GroupImport:    {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			},
		}),
	)

	r.GET(metricsPath, metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		if !status.OK {
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		respond.OK(c, status)
	})
	registerMeRoutes(api)
	if deps.JobsHandler != nil {
		deps.JobsHandler.RegisterRoutes(api)
	}
	if deps.GoalsHandler != nil {
		deps.GoalsHandler.RegisterRoutes(api)
	}
	if deps.PerformanceHandler != nil {
		deps.PerformanceHandler.RegisterRoutes(api)
	}

	return r
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
