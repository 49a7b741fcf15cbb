package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"intranet/internal/service"
)

// Services bundles the injected use-case implementations for route wiring.
type Services struct {
	Auth      service.AuthService
	Documents service.DocumentService
	Search    service.SearchService
	Content   service.ContentService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin; business logic lives in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/", Root())
	app.Get("/health", Health(db))

	// Serve OpenAPI spec and a minimal Swagger UI page.
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
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
		return c.Type("html").SendString(html)
	})

	api := app.Group("/api")
	api.Post("/login", Login(svcs.Auth))
	api.Get("/documents/:category", ListDocuments(svcs.Documents))
	api.Post("/upload/:category", UploadDocument(svcs.Documents))
	api.Get("/search", Search(svcs.Search))
	api.Get("/news", News(svcs.Content))
	api.Get("/calendar-events", CalendarEvents(svcs.Content))
	api.Get("/partners/:category", Partners(svcs.Content))
}
