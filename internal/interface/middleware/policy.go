package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
)

// RequireAction rejects requests whose user may not perform action.
// It must run after Authenticate.
func RequireAction(access *application.Access, action application.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := access.Authorize(CurrentUser(c), action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
