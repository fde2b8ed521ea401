package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_SSLMODE", "JWT_SECRET",
		"ACCESS_TOKEN_TTL", "GO_ENV", "FE_URL", "AUDIT_XLSX_PATH", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_DevDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.GoEnv)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=mangastore sslmode=disable", cfg.DSN())
}

func TestFromEnv_DatabaseURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DSN())
}

func TestFromEnv_InvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_PORT", "abc")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_PORT")

	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("ACCESS_TOKEN_TTL", "soon")

	_, err = FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_TTL")
}

func TestFromEnv_ProdRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "prod")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("FE_URL", "https://shop.example.com")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "9000", cfg.Port)
}
