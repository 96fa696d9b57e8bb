package db

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-immobiliare/internal/config"
	"github.com/diewo77/go-immobiliare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"agenzia.db", "agenzia.db?_foreign_keys=on"},
		{"file:agenzia.db?cache=shared", "file:agenzia.db?cache=shared&_foreign_keys=on"},
		{"agenzia.db?_busy_timeout=10000&", "agenzia.db?_busy_timeout=10000&_foreign_keys=on"},
		{"agenzia.db?", "agenzia.db?_foreign_keys=on"},
		{"agenzia.db?_foreign_keys=off", "agenzia.db?_foreign_keys=off"},
		{"agenzia.db?mode=rwc&_fk=1", "agenzia.db?mode=rwc&_fk=1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqliteDSN(tt.in), tt.in)
	}
}

func TestOpenSQLiteWithQueryEnforcesForeignKeys(t *testing.T) {
	conn := config.Connection{Driver: "sqlite", Database: "file:open_fk?mode=memory&cache=shared"}
	p, err := Open(conn, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, p, SchemaCreate, ""))

	client := "SIC0404"
	err = p.With(ctx, func(tx *gorm.DB) error {
		return tx.Omit("Client").Create(&models.Property{Code: "SI0001", Address: "Via Po", City: "Torino", ClientCode: &client}).Error
	})
	require.Error(t, err)
	assert.True(t, errors.Is(Classify(err), ErrForeignKey), "got %v", err)
}
