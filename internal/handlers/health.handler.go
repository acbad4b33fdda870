package handlers

import (
	"rcsc-server/internal/app"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, app *app.App) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"environment": app.Config.Environment,
			"sessions":    app.Websocket.ClientCount(),
		})
	})
}
