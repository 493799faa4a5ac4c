package main

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Relancio/relancio/config"
	"github.com/Relancio/relancio/internal/app"
	"github.com/Relancio/relancio/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		LogLevel:    "disabled",
		Version:     "test",
		Server: config.ServerConfig{
			Host: "localhost",
			// Random high port to avoid conflicts between test runs
			Port: 18080 + (time.Now().Nanosecond() % 1000),
		},
		Store: config.StoreConfig{
			DraftTable:    "email_drafts",
			FollowupTable: "followups",
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerMinute: 600,
			BurstSize:         100,
		},
	}
}

// TestServerStartShutdown exercises the start/stop cycle against a mock DB.
func TestServerStartShutdown(t *testing.T) {
	cfg := testConfig()
	appLogger := logger.NewTestLogger(t)

	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	appInstance := app.NewApp(cfg, app.WithLogger(appLogger), app.WithMockDB(mockDB))
	require.NoError(t, appInstance.Initialize())

	serverError := make(chan error, 1)
	go func() {
		serverError <- appInstance.Start()
	}()

	// Give the listener a moment to bind
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, appInstance.Shutdown(ctx))

	select {
	case err := <-serverError:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

func TestConfigLoadingFromEnv(t *testing.T) {
	t.Setenv("DB_USER", "postgres_test")
	t.Setenv("DB_PASSWORD", "postgres_test")
	t.Setenv("DB_NAME", "relancio_test")

	cfg, err := config.LoadWithOptions(config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "postgres_test", cfg.Database.User)
	assert.Equal(t, "relancio_test", cfg.Database.DBName)
}
