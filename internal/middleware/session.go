package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushq/course-api/internal/models"
	appErrors "github.com/campushq/course-api/pkg/errors"
	"github.com/campushq/course-api/pkg/response"
	"github.com/campushq/course-api/pkg/signer"
)

// ContextUserKey is the gin context key storing the resolved session.
const ContextUserKey = "currentUser"

// DefaultCookieName carries the session token between requests.
const DefaultCookieName = "course_session"

type sessionReader interface {
	Get(ctx context.Context, token string) (*models.Session, error)
}

// TokenFromRequest extracts the session token from the cookie or, as a
// fallback for API clients, from a Bearer authorization header.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// Session protects routes by requiring a live server-side session. The guard
// aborts before the wrapped handler runs; an absent or expired session never
// reaches a domain operation. The token signature is verified before the
// store is consulted, so forged cookies never cost a lookup.
func Session(store sessionReader, tokenSigner *signer.Signer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		signed := TokenFromRequest(c, cookieName)
		if signed == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		token, ok := tokenSigner.Verify(signed)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "session expired or invalid"))
			c.Abort()
			return
		}

		session, err := store.Get(c.Request.Context(), token)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session"))
			c.Abort()
			return
		}
		if session == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "session expired or invalid"))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, session)
		c.Next()
	}
}
