package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
	handlers "github.com/oksasatya/clubevents/internal/interface/http"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
	Authn   gin.HandlerFunc
	Access  *application.Access
}

func NewAdminModule(h *handlers.AdminHandler, authn gin.HandlerFunc, access *application.Access) *AdminModule {
	return &AdminModule{Handler: h, Authn: authn, Access: access}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	can := func(a application.Action) gin.HandlerFunc { return middleware.RequireAction(m.Access, a) }
	sa := rg.Group("/superadmin")
	sa.Use(m.Authn)
	{
		sa.GET("/users", can(application.ActionUserList), m.Handler.Users)
		sa.PUT("/users/:userId/role", can(application.ActionUserUpdateRole), m.Handler.UpdateRole)
		sa.DELETE("/users/:userId", can(application.ActionUserDelete), m.Handler.DeleteUser)
		sa.POST("/events/:id/reconcile", can(application.ActionEventReconcile), m.Handler.Reconcile)
	}
}
