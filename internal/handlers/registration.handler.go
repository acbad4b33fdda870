package handlers

import (
	"errors"

	"rcsc-server/internal/app"
	registrationController "rcsc-server/internal/controllers/registrations"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RegistrationHandler exposes the public intake endpoint. This is the
// system's trust boundary: origin and platform checks run before the
// body is even parsed.
type RegistrationHandler struct {
	Handler
	controller registrationController.RegistrationController
}

func NewRegistrationHandler(app app.App, router fiber.Router) *RegistrationHandler {
	log := logger.New("handlers").File("registration_handler")
	return &RegistrationHandler{
		controller: *app.RegistrationController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RegistrationHandler) Register() {
	registrations := h.router.Group(
		"/registrations",
		h.middleware.AllowedOrigin,
		h.middleware.SourcePlatform,
	)
	registrations.Post("/", h.create)
}

func (h *RegistrationHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var request RegistrationRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse registration request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "Invalid request body"})
	}

	meta := registrationController.IntakeMeta{
		UserAgent:    c.Get(fiber.HeaderUserAgent),
		ForwardedFor: c.Get(fiber.HeaderXForwardedFor),
		RemoteIP:     c.IP(),
	}

	_, fieldErrors, err := h.controller.Intake(c.Context(), &request, meta)
	if len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "Validation failed", "errors": fieldErrors})
	}
	if err != nil {
		if errors.Is(err, ErrDuplicateTransactionID) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "This Transaction ID has already been used."})
		}
		log.Er("failed to process registration", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Database error"})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"success": true, "message": "Registration successful"})
}
