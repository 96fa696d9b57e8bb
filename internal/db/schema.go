package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-immobiliare/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres database driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

// SchemaMode selects how EnsureSchema prepares the store.
type SchemaMode string

const (
	// SchemaCreate creates missing tables from the models.
	SchemaCreate SchemaMode = "create"
	// SchemaVerify only checks that externally provisioned tables exist.
	SchemaVerify SchemaMode = "verify"
	// SchemaMigrate applies the embedded SQL migrations (postgres only).
	SchemaMigrate SchemaMode = "migrate"
)

// ParseSchemaMode validates a mode name coming from configuration.
func ParseSchemaMode(s string) (SchemaMode, error) {
	switch m := SchemaMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SchemaCreate, SchemaVerify, SchemaMigrate:
		return m, nil
	case "":
		return SchemaCreate, nil
	default:
		return "", fmt.Errorf("unknown schema mode %q", s)
	}
}

// RequiredTables are the business tables verify mode expects to find.
var RequiredTables = []string{"immobili", "clienti"}

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MissingTablesError lists tables verify mode could not find.
type MissingTablesError struct {
	Tables []string
}

func (e *MissingTablesError) Error() string {
	return "missing tables: " + strings.Join(e.Tables, ", ")
}

// EnsureSchema prepares the store according to mode. Every mode is idempotent and
// leaves existing rows untouched, so it runs on each start.
func EnsureSchema(ctx context.Context, p *Provider, mode SchemaMode, dbURL string) error {
	switch mode {
	case SchemaCreate:
		return p.With(ctx, func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&models.Client{}, &models.Property{}, &models.SequenceCounter{}); err != nil {
				return fmt.Errorf("automigrate: %w", err)
			}
			return nil
		})
	case SchemaVerify:
		return p.With(ctx, func(tx *gorm.DB) error {
			var missing []string
			for _, table := range RequiredTables {
				if !tx.Migrator().HasTable(table) {
					missing = append(missing, table)
				}
			}
			if len(missing) > 0 {
				return &MissingTablesError{Tables: missing}
			}
			// The counter table belongs to the application, not to the provisioned schema.
			if err := tx.AutoMigrate(&models.SequenceCounter{}); err != nil {
				return fmt.Errorf("automigrate sequence_counters: %w", err)
			}
			return nil
		})
	case SchemaMigrate:
		if p.Dialect() != "postgres" {
			return fmt.Errorf("schema mode %q requires postgres, got %s", mode, p.Dialect())
		}
		return runSQLMigrations(dbURL)
	default:
		return fmt.Errorf("unknown schema mode %q", mode)
	}
}

// runSQLMigrations applies migrations/*.sql with golang-migrate.
func runSQLMigrations(dbURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
