package handler

import (
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recipeapi/docs"
	"recipeapi/internal/config"
	"recipeapi/internal/http/middleware"
)

// NewApp builds the Fiber app with the global middleware chain and every route.
//
// Order: panic recovery, CORS (all origins), request id, tracing, request log, HTTP metrics.
// Uploads are rate limited from cfg.RateLimit unless d.UploadGuard is set. /metrics is served
// when d.Gatherer is set.
func NewApp(cfg *config.AppConfig, d Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(),
		BodyLimit:             cfg.Scratch.MaxUploadBytes,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	if d.Logger != nil {
		app.Use(middleware.Logger(d.Logger))
	}
	if d.HTTPMetrics != nil {
		app.Use(d.HTTPMetrics.Handler())
	}

	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	if d.UploadGuard == nil {
		d.UploadGuard = middleware.RateLimit(middleware.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	RegisterRoutes(app, d)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	return app
}
