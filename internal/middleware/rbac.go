package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campushq/course-api/internal/models"
	appErrors "github.com/campushq/course-api/pkg/errors"
	"github.com/campushq/course-api/pkg/response"
)

// RequireRoles enforces a role allow-list for routes. It composes with
// Session: an unauthenticated request is rejected 401, a wrong role 403, and
// the wrapped handler never runs on either.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		session := value.(*models.Session)

		if _, ok := allowed[session.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
