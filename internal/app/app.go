package app

import (
	"rcsc-server/config"
	"rcsc-server/internal/database"
	"rcsc-server/internal/events"
	"rcsc-server/internal/handlers/middleware"
	"rcsc-server/internal/logger"
	"rcsc-server/internal/repositories"
	"rcsc-server/internal/services"
	"rcsc-server/internal/validation"
	"rcsc-server/internal/websockets"

	authController "rcsc-server/internal/controllers/auth"
	registrationController "rcsc-server/internal/controllers/registrations"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService *services.TransactionService
	SessionService     *services.SessionService
	IPLookupService    *services.IPLookupService

	// Repositories
	RegistrationRepo repositories.RegistrationRepository
	ModeratorRepo    repositories.ModeratorRepository

	// Controllers
	RegistrationController *registrationController.RegistrationController
	AuthController         *authController.AuthController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)
	sessionService := services.NewSessionService(db, config)
	ipLookupService := services.NewIPLookupService(config)

	// Initialize repositories
	registrationRepo := repositories.NewRegistration(db)
	moderatorRepo := repositories.NewModerator(db)

	// Initialize controllers with repositories and services
	validator := validation.New()
	registrationController := registrationController.New(eventBus, registrationRepo, transactionService, validator, config)
	authController := authController.New(moderatorRepo, sessionService, config)
	middleware := middleware.New(db, eventBus, config, moderatorRepo, authController)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:               db,
		Config:                 config,
		Middleware:             middleware,
		TransactionService:     transactionService,
		SessionService:         sessionService,
		IPLookupService:        ipLookupService,
		RegistrationRepo:       registrationRepo,
		ModeratorRepo:          moderatorRepo,
		RegistrationController: registrationController,
		AuthController:         authController,
		Websocket:              websocket,
		EventBus:               eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config.IntakePlatformMarker == "" {
		return log.ErrMsg("config is empty")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.SessionService,
		a.IPLookupService,
		a.RegistrationController,
		a.AuthController,
		a.Middleware,
		a.RegistrationRepo,
		a.ModeratorRepo,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Websocket != nil {
		if closeErr := a.Websocket.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
