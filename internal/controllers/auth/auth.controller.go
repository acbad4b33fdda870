package authController

import (
	"context"
	"errors"

	"rcsc-server/config"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"
	"rcsc-server/internal/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials deliberately covers both unknown email and wrong
// password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionStore is the slice of SessionService the controller needs.
type SessionStore interface {
	Create(ctx context.Context, moderatorID string) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type AuthController struct {
	moderatorRepo repositories.ModeratorRepository
	sessions      SessionStore
	Config        config.Config
	log           logger.Logger
}

func New(
	moderatorRepo repositories.ModeratorRepository,
	sessions SessionStore,
	config config.Config,
) *AuthController {
	return &AuthController{
		moderatorRepo: moderatorRepo,
		sessions:      sessions,
		Config:        config,
		log:           logger.New("AuthController"),
	}
}

func (ac *AuthController) Login(ctx context.Context, email, password string) (*Moderator, string, error) {
	log := ac.log.Function("Login")

	moderator, err := ac.moderatorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", log.Err("failed to look up moderator", err, "email", email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(moderator.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := ac.sessions.Create(ctx, moderator.ID)
	if err != nil {
		return nil, "", log.Err("failed to create session", err, "moderatorID", moderator.ID)
	}

	log.Info("Moderator logged in", "moderatorID", moderator.ID)
	return moderator, token, nil
}

func (ac *AuthController) Logout(ctx context.Context, token string) error {
	return ac.sessions.Delete(ctx, token)
}

// Resolve maps a session token back to its moderator.
func (ac *AuthController) Resolve(ctx context.Context, token string) (*Moderator, error) {
	moderatorID, err := ac.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	return ac.moderatorRepo.GetByID(ctx, moderatorID)
}

// HashPassword is used by seeding and moderator provisioning.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
