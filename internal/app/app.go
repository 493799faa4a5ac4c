package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/Relancio/relancio/config"
	"github.com/Relancio/relancio/internal/database"
	"github.com/Relancio/relancio/internal/domain"
	apihttp "github.com/Relancio/relancio/internal/http"
	"github.com/Relancio/relancio/internal/http/middleware"
	"github.com/Relancio/relancio/internal/repository"
	"github.com/Relancio/relancio/internal/service"
	"github.com/Relancio/relancio/pkg/logger"
	"github.com/Relancio/relancio/pkg/metrics"
	"github.com/Relancio/relancio/pkg/ratelimiter"
)

// App wires the engine together: config, database, repositories, services
// and HTTP handlers.
type App struct {
	config  *config.Config
	logger  logger.Logger
	db      *sql.DB
	mockDB  bool
	mux     *http.ServeMux
	server  *http.Server
	metrics *metrics.Metrics
	limiter *ratelimiter.RateLimiter

	draftRepo    domain.DraftRepository
	followupRepo domain.FollowupTaskRepository

	leadDirectory domain.LeadDirectoryService
	composer      domain.ComposerService

	scheduler    *service.SchedulerService
	cancellation *service.CancellationService
	processor    *service.ProcessorService
	retry        *service.RetryService
	repair       *service.RepairService
}

// Option configures the App
type Option func(*App)

// WithLogger sets a custom logger
func WithLogger(log logger.Logger) Option {
	return func(a *App) {
		a.logger = log
	}
}

// WithMockDB injects a database connection and skips schema initialization,
// for tests.
func WithMockDB(db *sql.DB) Option {
	return func(a *App) {
		a.db = db
		a.mockDB = true
	}
}

// NewApp creates a new App
func NewApp(cfg *config.Config, opts ...Option) *App {
	a := &App{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logger.NewLogger(cfg.LogLevel)
	}
	return a
}

// Initialize prepares every component. It must be called before Start.
func (a *App) Initialize() error {
	if err := a.initDB(); err != nil {
		return err
	}
	a.initServices()
	a.initHandlers()
	return nil
}

func (a *App) initDB() error {
	if a.mockDB {
		return nil
	}

	db, err := database.Connect(a.config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.EnsureSchema(db, a.config.Store.DraftTable, a.config.Store.FollowupTable); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	a.db = db
	return nil
}

func (a *App) initServices() {
	a.metrics = metrics.New()
	a.limiter = ratelimiter.NewRateLimiter(ratelimiter.Config{
		RequestsPerMinute: a.config.RateLimit.RequestsPerMinute,
		BurstSize:         a.config.RateLimit.BurstSize,
	})

	a.draftRepo = repository.NewDraftRepository(a.db, a.config.Store.DraftTable)
	a.followupRepo = repository.NewFollowupTaskRepository(a.db, a.config.Store.FollowupTable)

	a.leadDirectory = service.NewOdooLeadDirectoryService(
		a.config.CRM.URL,
		a.config.CRM.Secret,
		a.config.CRM.Timeout,
		a.metrics,
		a.logger.WithField("component", "crm"),
	)
	a.composer = service.NewHTTPComposerService(
		a.config.Composer.URL,
		a.config.Composer.Timeout,
		a.metrics,
		a.logger.WithField("component", "composer"),
	)

	a.scheduler = service.NewSchedulerService(a.draftRepo, a.followupRepo, a.metrics, a.logger)
	a.cancellation = service.NewCancellationService(a.draftRepo, a.followupRepo, a.metrics, a.logger)
	a.processor = service.NewProcessorService(a.draftRepo, a.followupRepo, a.leadDirectory, a.composer, a.metrics, a.logger)
	a.retry = service.NewRetryService(a.followupRepo, a.processor, a.logger)
	a.repair = service.NewRepairService(a.followupRepo, a.logger)
}

func (a *App) initHandlers() {
	rateLimitMw := middleware.NewRateLimitMiddleware(a.limiter, a.metrics, a.logger)

	followupHandler := apihttp.NewFollowupHandler(
		a.scheduler, a.cancellation, a.processor, a.retry, a.repair,
		rateLimitMw, a.logger,
	)
	healthHandler := apihttp.NewHealthHandler(a.metrics, a.config.Version)

	followupHandler.RegisterRoutes(a.mux)
	healthHandler.RegisterRoutes(a.mux)
}

// Start runs the HTTP server. It blocks until the server stops.
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	a.logger.WithFields(map[string]interface{}{
		"addr":    addr,
		"version": a.config.Version,
	}).Info("Server listening")

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	if a.limiter != nil {
		a.limiter.Stop()
	}

	var err error
	if a.server != nil {
		err = a.server.Shutdown(ctx)
	}

	if a.db != nil && !a.mockDB {
		if closeErr := a.db.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}

	a.logger.Info("Server stopped")
	return err
}

// Mux exposes the route table, for tests.
func (a *App) Mux() *http.ServeMux {
	return a.mux
}
