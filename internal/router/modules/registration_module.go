package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/clubevents/internal/interface/http"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
)

type RegistrationModule struct {
	Handler *handlers.RegistrationHandler
	Authn   gin.HandlerFunc
	Redis   *redis.Client
}

func NewRegistrationModule(h *handlers.RegistrationHandler, authn gin.HandlerFunc, rdb *redis.Client) *RegistrationModule {
	return &RegistrationModule{Handler: h, Authn: authn, Redis: rdb}
}

func (m *RegistrationModule) Register(rg *gin.RouterGroup) {
	regs := rg.Group("/event-registrations")
	regs.Use(m.Authn)
	regs.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		regs.POST("/register", m.Handler.Register)
		regs.GET("/user/:userId", m.Handler.ListByUser)
		regs.DELETE("/:registrationId", m.Handler.Cancel)
	}
}
