package main

import (
	"os"

	"rcsc-server/cmd/migration/initialize"
	"rcsc-server/cmd/migration/seed"
	"rcsc-server/config"
	"rcsc-server/internal/database"
	"rcsc-server/internal/logger"
)

// Usage: migration [up|init|seed|flush]
func main() {
	log := logger.New("migration")

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Er("failed to initialize database", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(cfg.DatabaseDriver); err != nil {
		log.Er("failed to apply migrations", err)
		os.Exit(1)
	}

	switch command {
	case "up":
	case "init":
		if err := initialize.InitializeTables(db.SQL, cfg, log); err != nil {
			log.Er("failed to initialize tables", err)
			os.Exit(1)
		}
	case "seed":
		if cfg.Environment != "development" {
			log.ErMsg("seeding is development-only", "environment", cfg.Environment)
			os.Exit(1)
		}
		if err := seed.Seed(db.SQL, cfg, log); err != nil {
			log.Er("failed to seed database", err)
			os.Exit(1)
		}
	case "flush":
		// drops cached sessions and pending event relays; useful after
		// reseeding
		if err := db.FlushAllCaches(); err != nil {
			log.Er("failed to flush caches", err)
			os.Exit(1)
		}
	default:
		log.ErMsg("unknown command", "command", command)
		os.Exit(1)
	}

	log.Info("Migration command complete", "command", command)
}
