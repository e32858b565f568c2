package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies pending goose migrations from dir. It opens its own
// database/sql connection since goose does not speak pgxpool.
func RunMigrations(connString, dir string) error {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedOpenMigrationDB, err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRunMigrations, err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRunMigrations, err)
	}

	slog.Info(LogMsgMigrationsApplied, "dir", dir)
	return nil
}
