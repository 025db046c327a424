package db

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Migrate applies the schema and seed migrations for the handle's driver.
func Migrate(ctx context.Context, db *sqlx.DB, log *slog.Logger) error {
	dialect := db.DriverName()
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, "migrations/"+dialect); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	log.Info("migrations applied", slog.String("dialect", dialect))
	return nil
}

type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...), slog.String("component", "goose"))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...), slog.String("component", "goose"))
	os.Exit(1)
}
