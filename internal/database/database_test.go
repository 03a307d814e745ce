package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/config"
)

func TestNewSQLite(t *testing.T) {
	svc, err := New(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:?cache=shared"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	health := svc.Health()
	assert.Equal(t, "up", health["status"])
	assert.Equal(t, "sqlite", health["driver"])

	assert.True(t, svc.GetDB().Migrator().HasTable("visitors"))
	assert.True(t, svc.GetDB().Migrator().HasTable("submissions"))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(config.DatabaseConfig{Driver: "mysql"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewRejectsBadPostgresDSN(t *testing.T) {
	_, err := New(config.DatabaseConfig{Driver: "postgres", DSN: "postgres://%zz"}, zap.NewNop())
	assert.Error(t, err)
}
