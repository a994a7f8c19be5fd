package performance

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/performance", h.performance)
}

func (h *Handler) performance(c *gin.Context) {
	f, err := ParseFilter(c.Query("from"), c.Query("to"), c.Query("status"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_filter", err.Error(), nil)
		return
	}
	res, err := h.Svc.Snapshot(c.Request.Context(), middleware.UserIDFromContext(c), f)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			respond.Error(c, http.StatusServiceUnavailable, "cancelled", "request cancelled", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute performance metrics", nil)
		return
	}
	if res.Cached {
		c.Header("X-Cache", "hit")
	} else {
		c.Header("X-Cache", "miss")
	}
	respond.OK(c, res)
}
