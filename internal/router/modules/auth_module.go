package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/clubevents/internal/interface/http"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Authn   gin.HandlerFunc
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, authn gin.HandlerFunc, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Authn: authn, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with per-IP rate limits
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(m.Authn)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
