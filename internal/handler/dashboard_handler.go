package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/course-api/internal/service"
	appErrors "github.com/campushq/course-api/pkg/errors"
	"github.com/campushq/course-api/pkg/response"
)

// DashboardHandler wires the dashboard endpoint to its service.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats returns the aggregate counts for the caller's landing page.
func (h *DashboardHandler) Stats(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats)
}
