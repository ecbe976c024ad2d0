package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	dsn, err := Config{DSN: "postgres://u:p@db:5432/app"}.ConnString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/app", dsn)

	dsn, err = Config{Connection: Connection{
		Host:     "db",
		User:     "reader",
		Password: "p@ss word",
		DbName:   "psadt",
	}}.ConnString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://reader:p%40ss%20word@db:5432/psadt?sslmode=disable", dsn)

	_, err = Config{}.ConnString()
	assert.Error(t, err)
}

func TestEnabledAndEnv(t *testing.T) {
	var cfg Config
	assert.False(t, cfg.Enabled())

	t.Setenv("POSTGRES_DSN", "postgres://localhost/app")
	cfg.ApplyEnv()
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "postgres://localhost/app", cfg.DSN)
}
