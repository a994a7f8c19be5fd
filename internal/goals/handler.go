package goals

import (
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
	rg.GET("/goals", h.get)
	rg.PUT("/goals", h.put)
}

func (h *Handler) get(c *gin.Context) {
	goals, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load goals", nil)
		return
	}
	respond.OK(c, goals)
}

func (h *Handler) put(c *gin.Context) {
	var req Goals
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	saved, err := h.Svc.Save(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid goals", verr.Issues)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save goals", nil)
		return
	}
	respond.OK(c, saved)
}
