package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/domain/entity"
	"github.com/oksasatya/clubevents/pkg/helpers"
)

const (
	CtxUserKey   = "currentUser"
	CtxUserIDKey = "userID"
	CtxClaimsKey = "claims"
)

// Authenticate resolves the auth cookie, or a Bearer token when there is no
// cookie, to the live user record. It sets currentUser, userID and claims in
// the Gin context on success.
func Authenticate(auth *application.AuthService, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Token(c)
		if token == "" {
			token, _ = helpers.TokenFromHeader(c.GetHeader("Authorization"))
		}
		u, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func CurrentClaims(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}
