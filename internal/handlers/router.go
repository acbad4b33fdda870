package handlers

import (
	"rcsc-server/internal/app"
	"rcsc-server/internal/handlers/middleware"
	"rcsc-server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	api := router.Group("/api")
	HealthHandler(api, app)
	NewRegistrationHandler(*app, api).Register()
	NewAuthHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}

// The change-event stream is part of the admin surface, so the upgrade
// sits behind the same session check as the REST routes.
func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", app.Middleware.RequireModerator, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}
