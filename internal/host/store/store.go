// Package store provides database connection and initialization utilities
// for the planner host, adapted from the teacher's internal/database
// package onto this project's own embedded migration set.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Config holds database configuration.
type Config struct {
	Path string
}

// Open opens a SQLite database connection with the mattn/go-sqlite3 cgo
// driver and runs every embedded migration.
func Open(cfg Config) (*sql.DB, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embeddedMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// OpenInMemory opens an in-memory SQLite database and runs migrations.
// Useful for testing.
func OpenInMemory() (*sql.DB, error) {
	return Open(Config{Path: ":memory:"})
}

// OpenTemp opens a temporary SQLite database file and runs migrations.
// Returns the database connection and a cleanup function.
func OpenTemp() (*sql.DB, func(), error) {
	tmpFile, err := os.CreateTemp("", "setforge-test-*.db")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp db file: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()

	db, err := Open(Config{Path: tmpPath})
	if err != nil {
		os.Remove(tmpPath)
		return nil, nil, err
	}

	cleanup := func() {
		db.Close()
		os.Remove(tmpPath)
	}

	return db, cleanup, nil
}
