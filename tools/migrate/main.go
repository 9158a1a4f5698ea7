package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Fardeen26/flashfeed/internal/migrations"
	"github.com/Fardeen26/flashfeed/pkg/config"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|create <name>]")
	}

	command := os.Args[1]

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The create command only writes a file
	if command == "create" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		createMigration(cfg, os.Args[2])
		return
	}

	db, dialect, err := open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	provider, err := migrations.Provider(db, dialect)
	if err != nil {
		log.Fatalf("Failed to load migrations: %v", err)
	}

	ctx := context.Background()
	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Printf("Applied %d migrations\n", len(results))
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Printf("Rolled back %s\n", result.Source.Path)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-24s %s\n", filepath.Base(s.Source.Path), applied)
		}
	case "reset":
		if _, err := provider.DownTo(ctx, 0); err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func open(cfg *config.Config) (*sql.DB, goose.Dialect, error) {
	if cfg.Storage.Driver == config.DriverSQLite {
		db, err := sql.Open("sqlite", cfg.Storage.SqlitePath)
		return db, goose.DialectSQLite3, err
	}
	db, err := sql.Open("postgres", cfg.GetDSN())
	return db, goose.DialectPostgres, err
}

func createMigration(cfg *config.Config, name string) {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get working directory: %v", err)
	}

	dir := "postgres"
	if cfg.Storage.Driver == config.DriverSQLite {
		dir = "sqlite"
	}
	migrationsDir := filepath.Join(wd, "internal", "migrations", dir)
	fmt.Printf("Creating migration in: %s\n", migrationsDir)

	goose.SetSequential(true)
	if err := goose.Create(nil, migrationsDir, name, "sql"); err != nil {
		log.Fatalf("Failed to create migration: %v", err)
	}
}
