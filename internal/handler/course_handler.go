package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/course-api/internal/service"
	appErrors "github.com/campushq/course-api/pkg/errors"
	"github.com/campushq/course-api/pkg/response"
)

// CourseHandler wires HTTP endpoints to the course service.
type CourseHandler struct {
	service *service.CourseService
}

// NewCourseHandler creates a new handler.
func NewCourseHandler(svc *service.CourseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// List returns the courses visible to the caller.
func (h *CourseHandler) List(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := h.service.List(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, courses)
}

// Create registers a course owned by the calling instructor. Any instructor
// id in the payload is ignored; ownership comes from the session.
func (h *CourseHandler) Create(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.service.Create(c.Request.Context(), session, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, course)
}
