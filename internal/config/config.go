package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App                   string
	Addr                  string
	LogLevel              string
	Title                 string
	LambdaFunction        string
	DataFile              string
	DataURL               string
	PostgresDSN           string
	PostgresMigrationsDir string
	DBPath                string
	DBMigrationsDir       string
	AdminUser             string
	AdminPasswordHash     string
}

// Load reads the environment. Outside Lambda, .env and .env.local are
// loaded first; variables already set in the environment win.
func Load() Config {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load(".env", ".env.local")
	}
	return fromEnv()
}

func fromEnv() Config {
	return Config{
		App:                   strings.ToLower(env("APP", "dev")),
		Addr:                  env("ADDR", ":8080"),
		LogLevel:              strings.ToLower(env("LOG_LEVEL", "info")),
		Title:                 env("TOURNAMENT_TITLE", "Campeonato de Vôlei"),
		LambdaFunction:        env("AWS_LAMBDA_FUNCTION_NAME", ""),
		DataFile:              env("DATA_FILE", ""),
		DataURL:               env("DATA_URL", ""),
		PostgresDSN:           env("POSTGRES_DSN", ""),
		PostgresMigrationsDir: env("POSTGRES_MIGRATIONS_DIR", ""),
		DBPath:                env("DB_PATH", ""),
		DBMigrationsDir:       env("DB_MIGRATIONS_DIR", ""),
		AdminUser:             env("ADMIN_USER", "admin"),
		AdminPasswordHash:     env("ADMIN_PASSWORD_HASH", ""),
	}
}

func env(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func (c Config) IsLambda() bool {
	return c.LambdaFunction != ""
}

func (c Config) IsProd() bool {
	return c.App == "prod"
}

func (c Config) IsDev() bool {
	return c.App == "dev"
}

// AdminEnabled reports whether the write endpoints can authenticate anyone.
func (c Config) AdminEnabled() bool {
	return c.AdminPasswordHash != ""
}
