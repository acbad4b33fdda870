package handlers

import (
	"errors"
	"strconv"

	"rcsc-server/internal/app"
	registrationController "rcsc-server/internal/controllers/registrations"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"
	"rcsc-server/internal/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler is the moderator read/write surface the dashboard roster
// consumes.
type AdminHandler struct {
	Handler
	controller registrationController.RegistrationController
	ipLookup   *services.IPLookupService
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		controller: *app.RegistrationController,
		ipLookup:   app.IPLookupService,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireModerator)
	admin.Get("/registrations", h.getRegistrations)
	admin.Patch("/registrations/:id", h.updateRegistration)
	admin.Delete("/registrations/:id", h.deleteRegistration)
	admin.Get("/ip-insights", h.getIPInsights)
}

func (h *AdminHandler) getRegistrations(c *fiber.Ctx) error {
	log := h.log.Function("getRegistrations")

	registrations, err := h.controller.GetAll(c.Context())
	if err != nil {
		log.Er("failed to get registrations", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get registrations"})
	}

	return c.JSON(fiber.Map{"message": "success", "registrations": registrations})
}

func (h *AdminHandler) updateRegistration(c *fiber.Ctx) error {
	log := h.log.Function("updateRegistration")

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid registration ID"})
	}

	var update RegistrationUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Er("failed to parse update request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid update payload"})
	}

	registration, err := h.controller.Update(c.Context(), id, &update)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateTransactionID):
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "This Transaction ID has already been used."})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "registration not found"})
		default:
			log.Er("failed to update registration", err, "id", id)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "failed to update registration"})
		}
	}

	return c.JSON(fiber.Map{"message": "success", "registration": registration})
}

func (h *AdminHandler) deleteRegistration(c *fiber.Ctx) error {
	log := h.log.Function("deleteRegistration")

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid registration ID"})
	}

	if err := h.controller.Delete(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "registration not found"})
		}
		log.Er("failed to delete registration", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to delete registration"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AdminHandler) getIPInsights(c *fiber.Ctx) error {
	log := h.log.Function("getIPInsights")

	ips, err := h.controller.IPAddresses(c.Context())
	if err != nil {
		log.Er("failed to collect registration IPs", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to collect registration IPs"})
	}

	locations, err := h.ipLookup.LookupBatch(c.Context(), ips)
	if err != nil {
		log.Er("failed to look up IPs", err)
		return c.Status(fiber.StatusBadGateway).
			JSON(fiber.Map{"message": "IP lookup failed"})
	}

	return c.JSON(fiber.Map{"message": "success", "locations": locations})
}
