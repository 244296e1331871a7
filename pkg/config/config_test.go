package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.App.StoreDriver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.Equal(t, "testuser", cfg.Seed.Username)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AUTH_RATE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.App.StoreDriver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.HTTP.AuthRateLimit)
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
}

func TestValidate_SecretRequiredOutsideDevelopment(t *testing.T) {
	cfg := &Config{
		App:  AppConfig{Env: "production", StoreDriver: StoreDriverPostgres},
		JWT:  JWTConfig{Expiration: 60},
		HTTP: HTTPConfig{Port: 8080},
	}
	assert.Error(t, cfg.Validate())

	cfg.App.Env = "development"
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.JWT.Secret)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{
		App:  AppConfig{Env: "development", StoreDriver: "mongo"},
		JWT:  JWTConfig{Secret: "x", Expiration: 60},
		HTTP: HTTPConfig{Port: 8080},
	}
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "inv", SSLMode: "disable"}
	dsn := c.ConnectionString()
	assert.Contains(t, dsn, "postgres://app:")
	assert.Contains(t, dsn, "@db:5432/inv?sslmode=disable")
	assert.NotContains(t, dsn, "p@ss:w/rd")

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
