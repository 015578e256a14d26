package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"pantryapi/internal/model"
	"pantryapi/internal/service"
)

const (
	serviceName    = "pantry-fulfillment-api"
	serviceVersion = "1.2.0"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, svc service.FulfillmentService) {
	// Serve OpenAPI spec and Swagger UI
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

	app.Get("/", Health())
	app.Get("/healthz", LivenessProbe())

	app.Post("/lookup", Lookup(svc))
	app.Post("/generate-labels", GenerateLabels(svc))
	app.Post("/update-after-generate", UpdateAfterGenerate(svc))
}

// Health reports service identity and version; the scanner frontend pings
// this on startup.
func Health() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":      true,
			"service": serviceName,
			"status":  "healthy",
			"version": serviceVersion,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// LivenessProbe is a bare liveness check for orchestrators.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Lookup resolves a scanned form ID to its intake record.
func Lookup(svc service.FulfillmentService) fiber.Handler {
	type lookupRequest struct {
		FormID string `json:"formId"`
	}

	return func(c *fiber.Ctx) error {
		var req lookupRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		rec, err := svc.Lookup(c.UserContext(), req.FormID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "data": rec})
	}
}

// GenerateLabels runs the full label pipeline for one order.
func GenerateLabels(svc service.FulfillmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.LabelRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.GenerateLabels(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"ok":            true,
			"count":         res.Count,
			"merged":        res.Merged,
			"recordUpdated": res.RecordUpdated,
		})
	}
}

// UpdateAfterGenerate writes generated-document metadata back onto the
// intake record without rendering anything.
func UpdateAfterGenerate(svc service.FulfillmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.UpdateAfterGenerate(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"ok":         true,
			"updatedRow": res.UpdatedRow,
			"columns":    res.Columns,
		})
	}
}
