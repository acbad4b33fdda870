package middleware

import (
	"errors"
	"strings"

	"rcsc-server/config"
	authController "rcsc-server/internal/controllers/auth"
	"rcsc-server/internal/database"
	"rcsc-server/internal/events"
	"rcsc-server/internal/logger"
	"rcsc-server/internal/repositories"
	"rcsc-server/internal/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const SessionCookie = "rcsc_session"

type Middleware struct {
	db            database.DB
	eventBus      *events.EventBus
	config        config.Config
	moderatorRepo repositories.ModeratorRepository
	auth          *authController.AuthController
	log           logger.Logger
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	moderatorRepo repositories.ModeratorRepository,
	auth *authController.AuthController,
) Middleware {
	return Middleware{
		db:            db,
		eventBus:      eventBus,
		config:        config,
		moderatorRepo: moderatorRepo,
		auth:          auth,
		log:           logger.New("middleware"),
	}
}

// AllowedOrigin rejects requests whose Origin or Referer does not match
// an allow-listed site origin. The intake endpoint is reachable from the
// public internet and must fail closed on cross-site traffic.
func (m Middleware) AllowedOrigin(c *fiber.Ctx) error {
	origin := c.Get(fiber.HeaderOrigin)
	referer := c.Get(fiber.HeaderReferer)

	for _, allowed := range m.config.IntakeAllowedOrigins {
		if origin == allowed {
			return c.Next()
		}
		if referer != "" && strings.HasPrefix(referer, allowed) {
			return c.Next()
		}
	}

	m.log.Function("AllowedOrigin").Warn("rejected origin",
		"origin", origin, "referer", referer, "ip", c.IP())
	return c.Status(fiber.StatusForbidden).
		JSON(fiber.Map{"message": "Unauthorized source"})
}

// SourcePlatform requires the platform marker header carried by the real
// registration form; generic scripts fail here.
func (m Middleware) SourcePlatform(c *fiber.Ctx) error {
	if c.Get("X-Source-Platform") != m.config.IntakePlatformMarker {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "Invalid platform"})
	}

	return c.Next()
}

// RequireModerator resolves the session cookie to a moderator and stores
// it in locals for downstream handlers.
func (m Middleware) RequireModerator(c *fiber.Ctx) error {
	log := m.log.Function("RequireModerator")

	token := c.Cookies(SessionCookie)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Authentication required"})
	}

	moderator, err := m.auth.Resolve(c.Context(), token)
	if err != nil {
		if !errors.Is(err, services.ErrSessionNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Er("failed to resolve session", err)
		}
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Invalid or expired session"})
	}

	c.Locals("moderator", *moderator)
	return c.Next()
}
