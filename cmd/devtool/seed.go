package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed database with sample recipes (dev)"
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: dev")
	}

	db, err := sql.Open("pgx", databaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	switch args[0] {
	case "dev":
		return runSeedFiles(db, []string{
			"internal/database/seeds/dev_recipes.sql",
		})
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func runSeedFiles(db *sql.DB, files []string) error {
	for _, file := range files {
		PrintInfo("Applying seed file: %s", file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", file, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute seed file %s: %w", file, err)
		}
	}
	PrintSuccess("Seeding complete")
	return nil
}
