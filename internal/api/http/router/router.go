package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/interiora_backend/config"
	"github.com/Alijeyrad/interiora_backend/internal/api/http/handler"
	"github.com/Alijeyrad/interiora_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/interiora_backend/internal/service/admin"
	"github.com/Alijeyrad/interiora_backend/internal/service/content"
	"github.com/Alijeyrad/interiora_backend/internal/service/lead"
	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
	"github.com/Alijeyrad/interiora_backend/pkg/constants"
	"github.com/Alijeyrad/interiora_backend/pkg/database"
	pasetotoken "github.com/Alijeyrad/interiora_backend/pkg/paseto"
	redispkg "github.com/Alijeyrad/interiora_backend/pkg/redis"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg        *config.Config
	Redis      *redis.Client
	DB         *database.DB
	Auth       authorize.IAuthorization
	LeadSvc    lead.Service
	ContentSvc content.Service

	// Present only when authentication is enabled.
	AdminSvc  admin.Service          `optional:"true"`
	PasetoMgr *pasetotoken.Manager   `optional:"true"`
	Sessions  *redispkg.SessionStore `optional:"true"`
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Middlewares
	limit := r.enquiryLimiter()

	// 3. Initialize Handlers
	siteH := handler.NewSiteHandler(r.p.Cfg.Site, r.p.ContentSvc, r.p.LeadSvc)
	enquiryH := handler.NewEnquiryHandler(r.p.LeadSvc, r.p.Cfg.Site.Phone)
	contentH := handler.NewContentHandler(r.p.ContentSvc)

	api := app.Group("/api/v1")

	// 4. Delegate to sub-files
	r.registerSiteRoutes(app, siteH, limit)
	r.registerPublicRoutes(api, enquiryH, contentH, limit)

	if r.p.AdminSvc != nil && r.p.PasetoMgr != nil && r.p.Sessions != nil {
		authRequired := middleware.AuthRequired(r.p.PasetoMgr, r.p.Sessions)
		requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
			return middleware.RequirePermission(r.p.Auth, res, act)
		}
		app.Get("/admin/login", siteH.AdminLogin)
		r.registerAdminRoutes(api, handler.NewAdminHandler(r.p.AdminSvc), authRequired, requirePerm, limit)
	}
}

// enquiryLimiter guards the write endpoints. It is a no-op outside
// production or when disabled.
func (r *Router) enquiryLimiter() fiber.Handler {
	srv := r.p.Cfg.Server
	if srv.Environment != constants.EnvProduction || !srv.RateLimit.Enabled {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	return middleware.NewLimiterWithRedis(r.p.Redis, srv.RateLimit)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.p.DB.Ping(c.Context()) == nil },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		app.Get(MetricsPath(r.p.Cfg), adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// MetricsPath is the Prometheus scrape path, /metrics unless configured.
func MetricsPath(cfg *config.Config) string {
	if p := cfg.Observability.Metrics.Path; p != "" {
		return p
	}
	return "/metrics"
}
