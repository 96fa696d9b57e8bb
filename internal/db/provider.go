// Package db owns the relational store: connection handling, schema management and
// classification of driver errors.
package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/diewo77/go-immobiliare/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrConnection is returned when no connection to the store can be acquired.
var ErrConnection = errors.New("database connection failed")

// Options tunes how Open builds the gorm handle.
type Options struct {
	Logger *zap.Logger
	// Debug logs every SQL statement.
	Debug bool
}

// Provider hands out scoped connections to the store.
type Provider struct {
	db *gorm.DB
}

// NewProvider wraps an already opened gorm handle.
func NewProvider(db *gorm.DB) *Provider {
	return &Provider{db: db}
}

// Open connects to the store described by conn.
func Open(conn config.Connection, opts Options) (*Provider, error) {
	var dialector gorm.Dialector
	switch conn.Driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(conn.DSN()))
	default:
		dialector = postgres.Open(conn.DSN())
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger(opts)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return &Provider{db: gdb}, nil
}

// sqliteDSN turns foreign key enforcement on unless the DSN already sets it.
func sqliteDSN(dsn string) string {
	_, query, hasQuery := strings.Cut(dsn, "?")
	if q, err := url.ParseQuery(query); err == nil && (q.Has("_foreign_keys") || q.Has("_fk")) {
		return dsn
	}
	if !hasQuery {
		return dsn + "?_foreign_keys=on"
	}
	if query == "" || strings.HasSuffix(query, "&") {
		return dsn + "_foreign_keys=on"
	}
	return dsn + "&_foreign_keys=on"
}

func gormLogger(opts Options) logger.Interface {
	if opts.Logger == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}
	return logger.New(zap.NewStdLog(opts.Logger.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// With runs fn on a dedicated connection taken from the pool. The connection is
// released when fn returns, whatever the outcome. The handle passed to fn can be
// reused for several statements.
func (p *Provider) With(ctx context.Context, fn func(tx *gorm.DB) error) error {
	acquired := false
	err := p.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		acquired = true
		return fn(tx.Session(&gorm.Session{NewDB: true}))
	})
	if err != nil && !acquired {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return err
}

// Dialect returns the name of the underlying driver ("postgres" or "sqlite").
func (p *Provider) Dialect() string {
	return p.db.Dialector.Name()
}

// Ping checks the store and returns its server version.
func (p *Provider) Ping(ctx context.Context) (string, error) {
	query := "SELECT version()"
	if p.Dialect() == "sqlite" {
		query = "SELECT 'SQLite ' || sqlite_version()"
	}
	var version string
	err := p.With(ctx, func(tx *gorm.DB) error {
		return tx.Raw(query).Row().Scan(&version)
	})
	if err != nil {
		return "", err
	}
	return version, nil
}

// Close releases the connection pool.
func (p *Provider) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
