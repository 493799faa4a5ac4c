package app

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Relancio/relancio/config"
	"github.com/Relancio/relancio/pkg/logger"
)

func createTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		LogLevel:    "disabled",
		Version:     "test",
		Server: config.ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Database: config.DatabaseConfig{
			User:     "postgres_test",
			Password: "postgres_test",
			Host:     "localhost",
			Port:     5432,
			DBName:   "relancio_test",
			SSLMode:  "disable",
		},
		Store: config.StoreConfig{
			DraftTable:    "email_drafts",
			FollowupTable: "followups",
		},
		Composer: config.ComposerConfig{
			URL:     "http://composer.test",
			Timeout: time.Second,
		},
		CRM: config.CRMConfig{
			URL:     "http://crm.test",
			Secret:  "secret",
			Timeout: time.Second,
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerMinute: 600,
			BurstSize:         100,
		},
	}
}

func setupTestDBMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func TestNewApp(t *testing.T) {
	cfg := createTestConfig()

	t.Run("default logger from config", func(t *testing.T) {
		a := NewApp(cfg)
		assert.NotNil(t, a.logger)
		assert.NotNil(t, a.mux)
		assert.Equal(t, cfg, a.config)
	})

	t.Run("WithLogger", func(t *testing.T) {
		log := logger.NewSilentLogger()
		a := NewApp(cfg, WithLogger(log))
		assert.Equal(t, log, a.logger)
	})

	t.Run("WithMockDB", func(t *testing.T) {
		db, _ := setupTestDBMock(t)
		defer db.Close()

		a := NewApp(cfg, WithMockDB(db))
		assert.Equal(t, db, a.db)
		assert.True(t, a.mockDB)
	})
}

func TestAppInitialize(t *testing.T) {
	db, _ := setupTestDBMock(t)
	defer db.Close()

	a := NewApp(createTestConfig(), WithMockDB(db), WithLogger(logger.NewTestLogger(t)))
	require.NoError(t, a.Initialize())
	defer a.limiter.Stop()

	assert.NotNil(t, a.draftRepo)
	assert.NotNil(t, a.followupRepo)
	assert.NotNil(t, a.leadDirectory)
	assert.NotNil(t, a.composer)
	assert.NotNil(t, a.scheduler)
	assert.NotNil(t, a.cancellation)
	assert.NotNil(t, a.processor)
	assert.NotNil(t, a.retry)
	assert.NotNil(t, a.repair)
}

func TestAppRoutes(t *testing.T) {
	db, _ := setupTestDBMock(t)
	defer db.Close()

	a := NewApp(createTestConfig(), WithMockDB(db), WithLogger(logger.NewTestLogger(t)))
	require.NoError(t, a.Initialize())
	defer a.limiter.Stop()

	server := httptest.NewServer(a.Mux())
	defer server.Close()

	t.Run("health endpoint registered", func(t *testing.T) {
		resp, err := server.Client().Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("metrics endpoint registered", func(t *testing.T) {
		resp, err := server.Client().Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("control endpoint rejects GET", func(t *testing.T) {
		resp, err := server.Client().Get(server.URL + "/schedule-followups")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 405, resp.StatusCode)
	})
}

func TestAppShutdown(t *testing.T) {
	db, mock := setupTestDBMock(t)
	mock.ExpectClose()

	a := NewApp(createTestConfig(), WithMockDB(db), WithLogger(logger.NewTestLogger(t)))
	require.NoError(t, a.Initialize())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Mock DB stays owned by the test, so Shutdown must not close it.
	require.NoError(t, a.Shutdown(ctx))
	require.NoError(t, db.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
