package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/server/middleware"
	"jobtracker-backend/internal/shared/server/respond"
	"jobtracker-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.POST("/jobs/import", h.importJobs)
	rg.PATCH("/jobs/:id/status", h.updateStatus)
}

type importRequest struct {
	Records []ImportRecord `json:"records"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	jobs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load jobs", nil)
		return
	}
	if jobs == nil {
		jobs = []Job{}
	}
	respond.OK(c, gin.H{"items": jobs})
}

func (h *Handler) importJobs(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	result, err := h.Svc.Import(c.Request.Context(), userID, req.Records)
	if err != nil {
		writeError(c, err, "failed to import jobs")
		return
	}
	telemetry.Info("jobs.imported", map[string]any{
		"user_id":    userID,
		"request_id": middleware.RequestIDFromContext(c),
		"count":      result.Imported,
	})
	respond.Created(c, result)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	jobID := c.Param("id")
	c.Set(middleware.JobIDKey, jobID)
	job, err := h.Svc.UpdateStatus(c.Request.Context(), middleware.UserIDFromContext(c), jobID, req.Status)
	if err != nil {
		writeError(c, err, "failed to update job status")
		return
	}
	c.Set(middleware.StatusTransitionKey, "->"+string(job.Status))
	respond.OK(c, job)
}

func writeError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid job data", verr.Issues)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", "job id already imported", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
