package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
	handlers "github.com/oksasatya/clubevents/internal/interface/http"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
)

// EventModule serves the public catalogue and clubadmin event management.
// Ownership of the event's club is checked by the service.
type EventModule struct {
	Handler *handlers.EventHandler
	Authn   gin.HandlerFunc
	Access  *application.Access
}

func NewEventModule(h *handlers.EventHandler, authn gin.HandlerFunc, access *application.Access) *EventModule {
	return &EventModule{Handler: h, Authn: authn, Access: access}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	rg.GET("/events", m.Handler.List)
	rg.GET("/events/search", m.Handler.Search)
	rg.GET("/events/:id", m.Handler.Get)

	can := func(a application.Action) gin.HandlerFunc { return middleware.RequireAction(m.Access, a) }
	admin := rg.Group("/events")
	admin.Use(m.Authn)
	{
		admin.GET("/my/events", can(application.ActionEventListOwn), m.Handler.Mine)
		admin.POST("", can(application.ActionEventCreate), m.Handler.Create)
		admin.PUT("/:id", can(application.ActionEventUpdate), m.Handler.Update)
		admin.DELETE("/:id", can(application.ActionEventDelete), m.Handler.Delete)
		admin.POST("/:id/image", can(application.ActionEventUploadImage), m.Handler.UploadImage)
		admin.GET("/:id/registrations", can(application.ActionEventListRegistrations), m.Handler.Registrations)
		admin.POST("/:id/announcements", can(application.ActionEventAnnounce), m.Handler.Announce)
	}
}
