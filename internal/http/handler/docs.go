package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"calldash/docs"
)

// RegisterDocs serves the Swagger UI under /swagger. The advertised host is fixed here, before
// any request is served; an empty host lets the UI call whichever host served it.
func RegisterDocs(app *fiber.App, host string) {
	docs.SwaggerInfo.Host = host
	app.Get("/swagger/*", swagger.HandlerDefault)
}
