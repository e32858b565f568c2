package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "migrations"

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Run migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}

	db, err := sql.Open("pgx", databaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch args[0] {
	case "up":
		PrintHeader("Applying migrations...")
		if err := goose.Up(db, migrationsDir); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
		return nil
	case "down":
		PrintHeader("Rolling back one migration...")
		if err := goose.Down(db, migrationsDir); err != nil {
			return err
		}
		PrintSuccess("Rolled back")
		return nil
	case "status":
		return goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}
