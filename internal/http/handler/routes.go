package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"recipeapi/internal/http/middleware"
	"recipeapi/internal/service"
	"recipeapi/internal/storage"
)

// Dependencies are the collaborators the HTTP routes need.
type Dependencies struct {
	Scratch storage.Storage
	Uploads service.UploadService
	Orders  service.OrderService
	Logger  *slog.Logger
	// UploadGuard runs before the upload handler, typically a rate limiter. Optional.
	UploadGuard fiber.Handler
	// OpenAPIPath is the file served at /openapi.yaml. Defaults to "openapi.yaml".
	OpenAPIPath string

	// Used by NewApp only. Both optional.
	HTTPMetrics *middleware.PrometheusMiddleware
	Gatherer    prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	openapi := d.OpenAPIPath
	if openapi == "" {
		openapi = "openapi.yaml"
	}

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile(openapi)
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Type("html").SendString(docsPage)
	})

	app.Get("/health", HealthCheck(d.Scratch))
	app.Get("/healthz", Liveness())

	api := app.Group("/api")

	upload := []fiber.Handler{}
	if d.UploadGuard != nil {
		upload = append(upload, d.UploadGuard)
	}
	upload = append(upload, UploadCSV(d.Uploads, log))
	api.Post("/upload-csv", upload...)

	api.Post("/order-ingredients", OrderIngredients(d.Orders, log))
}

const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Recipe API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
