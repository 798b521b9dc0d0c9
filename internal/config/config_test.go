package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP", "ADDR", "LOG_LEVEL", "TOURNAMENT_TITLE", "AWS_LAMBDA_FUNCTION_NAME", "DATA_FILE", "DATA_URL", "POSTGRES_DSN", "DB_PATH", "ADMIN_USER", "ADMIN_PASSWORD_HASH"} {
		t.Setenv(key, "")
	}
	cfg := fromEnv()

	assert.Equal(t, "dev", cfg.App)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
	assert.False(t, cfg.IsLambda())
	assert.False(t, cfg.AdminEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP", " PROD ")
	t.Setenv("ADDR", ":9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "volei-api")
	t.Setenv("DATA_URL", "https://example.com/dados.json")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")

	cfg := fromEnv()

	assert.Equal(t, "prod", cfg.App)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.IsLambda())
	assert.Equal(t, "https://example.com/dados.json", cfg.DataURL)
	assert.True(t, cfg.AdminEnabled())
}
