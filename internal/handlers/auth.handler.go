package handlers

import (
	"errors"
	"time"

	"rcsc-server/internal/app"
	authController "rcsc-server/internal/controllers/auth"
	"rcsc-server/internal/handlers/middleware"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller authController.AuthController
	sessionTTL time.Duration
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		controller: *app.AuthController,
		sessionTTL: time.Duration(app.Config.SessionTTLMinutes) * time.Minute,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)
	auth.Post("/logout", h.logout)
	auth.Get("/me", h.middleware.RequireModerator, h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var loginRequest LoginRequest
	if err := c.BodyParser(&loginRequest); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	moderator, token, err := h.controller.Login(c.Context(), loginRequest.Email, loginRequest.Password)
	if err != nil {
		if errors.Is(err, authController.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Invalid email or password"})
		}
		log.Er("login failed", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "login failed"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"message": "success", "moderator": moderator})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	if token := c.Cookies(middleware.SessionCookie); token != "" {
		if err := h.controller.Logout(c.Context(), token); err != nil {
			log.Er("failed to delete session", err)
		}
		c.ClearCookie(middleware.SessionCookie)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	moderator, ok := c.Locals("moderator").(Moderator)
	if !ok {
		h.log.Function("me").ErMsg("No moderator found in locals")
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error"})
	}

	return c.JSON(fiber.Map{"message": "success", "moderator": moderator})
}
