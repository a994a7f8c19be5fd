package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	JobIDKey            = "jobId"
	StatusTransitionKey = "statusTransition"
)

// Logging emits a structured log and a request counter per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		isGuest, _ := c.Get(isGuestKey)
		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"is_guest":    isGuest,
			"client_ip":   c.ClientIP(),
		}
		if jobID := c.GetString(JobIDKey); jobID != "" {
			fields["job_id"] = jobID
		}
		if transition := c.GetString(StatusTransitionKey); transition != "" {
			fields["status_transition"] = transition
		}
		if cache := c.Writer.Header().Get("X-Cache"); cache != "" {
			fields["cache"] = cache
		}
		telemetry.Info("request.complete", fields)
	}
}
