package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/course-api/internal/middleware"
	"github.com/campushq/course-api/internal/models"
	"github.com/campushq/course-api/internal/service"
	appErrors "github.com/campushq/course-api/pkg/errors"
	"github.com/campushq/course-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service    *service.AuthService
	cookieName string
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookieName string) *AuthHandler {
	if cookieName == "" {
		cookieName = middleware.DefaultCookieName
	}
	return &AuthHandler{service: svc, cookieName: cookieName}
}

// Register creates a user account. The role defaults to student.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	info, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, info)
}

// Login authenticates by email and password and issues a session. The token
// is set as an HttpOnly cookie and also returned for non-browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, res.Token, int(h.service.SessionTTL().Seconds()), "/", "", false, true)

	response.JSON(c, http.StatusOK, res)
}

// Logout ends the current session. It succeeds even without one.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c, h.cookieName)

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	response.JSON(c, http.StatusOK, gin.H{"message": "logged out"})
}
