package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rcsc-server/internal/app"
	"rcsc-server/internal/handlers"
	"rcsc-server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close application", err)
		}
	}()

	dialect := application.Config.DatabaseDriver
	if err := application.Database.Migrate(dialect); err != nil {
		log.Er("failed to migrate database", err)
		os.Exit(1)
	}

	fiberApp := fiber.New(fiber.Config{
		AppName: "rcsc-server",
	})

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to set up routes", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", application.Config.ServerHost, application.Config.ServerPort)
		log.Info("Starting server", "address", address)
		if err := fiberApp.Listen(address); err != nil {
			log.Er("server stopped", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info("Shutting down")
	if err := fiberApp.Shutdown(); err != nil {
		log.Er("failed to shut down server", err)
	}
}
