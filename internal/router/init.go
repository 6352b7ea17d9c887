package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/container"
	"github.com/oksasatya/clubevents/internal/infrastructure/elastic"
	"github.com/oksasatya/clubevents/internal/infrastructure/queue"
	handlers "github.com/oksasatya/clubevents/internal/interface/http"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/internal/metrics"
	"github.com/oksasatya/clubevents/internal/router/modules"
	"github.com/oksasatya/clubevents/pkg/helpers"
)

// Services are the application services built from the container.
type Services struct {
	Auth          *application.AuthService
	Clubs         *application.ClubService
	Events        *application.EventService
	Registrations *application.RegistrationService
	Admin         *application.AdminService
	Access        *application.Access
}

// BuildServices wires repositories and optional infrastructure into the
// application services. Missing infrastructure leaves the matching port nil.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repos := container.GetRepositories()
	access := application.NewAccess(nil)
	branding := cfg.Branding()

	var notifier application.Notifier
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = queue.NewEmailNotifier(pub, cfg.MailSendEnabled, logger)
	}
	var revoker application.TokenRevoker
	if d := helpers.NewTokenDenylist(container.GetRedis()); d != nil {
		revoker = d
	}
	var index application.EventIndex
	if x := elastic.NewEventIndex(container.GetES(), cfg.ESEventsIndex); x != nil {
		index = x
	}
	var images application.ImageStore
	if u := helpers.NewGCSUploader(container.GetGCS(), cfg.GCSBucket); u != nil {
		images = u
	}

	auth := application.NewAuthService(repos.Users, repos.Clubs, container.GetJWT(), logger)
	auth.Revoker = revoker
	auth.Access = access
	auth.Notifier = notifier
	auth.Branding = branding

	clubs := application.NewClubService(repos.Clubs, repos.Users, logger)
	clubs.Access = access
	clubs.Notifier = notifier
	clubs.Branding = branding

	events := application.NewEventService(repos.Events, repos.Clubs, repos.Registrations, logger)
	events.Access = access
	events.Index = index
	events.Images = images
	events.Notifier = notifier
	events.Branding = branding

	regs := application.NewRegistrationService(repos.Events, repos.Users, repos.Registrations, logger)
	regs.Access = access
	regs.Notifier = notifier
	regs.Branding = branding
	if cfg.MetricsEnabled {
		regs.Observer = metrics.RegistrationObserver{}
	}

	admin := application.NewAdminService(repos.Users, repos.Events, logger)
	admin.Access = access

	return Services{Auth: auth, Clubs: clubs, Events: events, Registrations: regs, Admin: admin, Access: access}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildServices()

	cookies := helpers.NewCookie(cfg.AuthCookieName, cfg.CookieDomain, cfg.CookieSecure)
	authn := middleware.Authenticate(svc.Auth, cookies)
	rdb := container.GetRedis()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, cookies, logger), authn, rdb))
	r.Add(modules.NewClubModule(handlers.NewClubHandler(svc.Clubs), authn, svc.Access))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(svc.Events, logger), authn, svc.Access))
	r.Add(modules.NewRegistrationModule(handlers.NewRegistrationHandler(svc.Registrations), authn, rdb))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(svc.Admin), authn, svc.Access))
	if cfg.MetricsEnabled {
		r.Add(modules.NewDebugModule(r.Engine, rdb))
	}
}

// Health answers liveness probes outside the /api group.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
