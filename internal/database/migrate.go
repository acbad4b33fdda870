package database

import (
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationFiles embed.FS

// Migrate applies pending schema migrations. Each supported driver keeps
// its own migration set so local sqlite databases end up with the same
// schema as the hosted postgres one.
func (s *DB) Migrate(dialect string) error {
	log := s.log.Function("Migrate")

	if dialect == "" || dialect == "sqlite" {
		dialect = "sqlite3"
	}

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations/" + dialect,
	}

	applied, err := migrate.Exec(sqlDB, dialect, source, migrate.Up)
	if err != nil {
		return log.Err("failed to apply migrations", err, "dialect", dialect)
	}

	log.Info("Migrations applied", "count", applied, "dialect", dialect)
	return nil
}
