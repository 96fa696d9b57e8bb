// Package dbtest provides in-memory stores for tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/diewo77/go-immobiliare/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open returns a provider backed by a private in-memory sqlite database with the
// schema created. The database is closed when the test ends.
func Open(t testing.TB) *db.Provider {
	t.Helper()
	p, _ := OpenRaw(t)
	if err := db.EnsureSchema(context.Background(), p, db.SchemaCreate, ""); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return p
}

// OpenRaw returns a provider on an empty in-memory database together with the
// gorm handle, for tests that manage the schema themselves.
func OpenRaw(t testing.TB) (*db.Provider, *gorm.DB) {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, seq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// Shared-cache memory databases vanish with their last connection.
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db.NewProvider(gdb), gdb
}
