package di

import (
	"context"
	"path/filepath"
	"testing"

	"user-crud-service/internal/config"
	"user-crud-service/internal/usecase/user"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DB: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			Path:         filepath.Join(t.TempDir(), "users.db"),
			MaxOpenConns: 4,
			MaxIdleConns: 2,
		},
		App: config.AppConfig{
			HTTPHost:               "localhost",
			HTTPPort:               "5000",
			ShutdownTimeoutSeconds: 5,
		},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 10, BurstCapacity: 20},
		Logger:    config.LoggerConfig{Level: "warn", Format: "json", OutputPath: "stdout"},
	}
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	c, err := NewContainer(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.RateLimiter)
	require.NotNil(t, c.UserHandler)

	// schema is ready as soon as the container is
	resp, err := c.UserUC.CreateUser(ctx, user.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Positive(t, resp.ID)
}

func TestNewContainer_WithRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.RateLimit.Enabled = true
	cfg.Redis = config.RedisConfig{Host: mr.Host(), Port: mr.Port(), PoolSize: 2}

	c, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	assert.NotNil(t, c.RedisClient)
	assert.NotNil(t, c.RateLimiter)
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Driver = "mysql"

	_, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "config validation failed")
}
