package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
	handlers "github.com/oksasatya/clubevents/internal/interface/http"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
)

// ClubModule serves the public club directory and superadmin club management.
type ClubModule struct {
	Handler *handlers.ClubHandler
	Authn   gin.HandlerFunc
	Access  *application.Access
}

func NewClubModule(h *handlers.ClubHandler, authn gin.HandlerFunc, access *application.Access) *ClubModule {
	return &ClubModule{Handler: h, Authn: authn, Access: access}
}

func (m *ClubModule) Register(rg *gin.RouterGroup) {
	rg.GET("/clubs", m.Handler.List)
	rg.GET("/clubs/:id", m.Handler.Get)

	can := func(a application.Action) gin.HandlerFunc { return middleware.RequireAction(m.Access, a) }
	rg.POST("/clubs", m.Authn, can(application.ActionClubCreate), m.Handler.Create)
	rg.PUT("/clubs/:id", m.Authn, can(application.ActionClubUpdate), m.Handler.Update)
	rg.DELETE("/clubs/:id", m.Authn, can(application.ActionClubDelete), m.Handler.Delete)
}
