// Package bootstrap wires all dependencies and starts the taskboard demo
// application. It is the reference wiring for embedding the action engine
// in a server: stores, services, action configs, templates, handler,
// router, and lifecycle all come together here.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/artpar/actionkit/adapters/clock"
	"github.com/artpar/actionkit/adapters/hasher"
	"github.com/artpar/actionkit/adapters/idgen"
	"github.com/artpar/actionkit/adapters/memory"
	"github.com/artpar/actionkit/adapters/metrics"
	"github.com/artpar/actionkit/adapters/sqlite"
	"github.com/artpar/actionkit/app"
	"github.com/artpar/actionkit/config"
	"github.com/artpar/actionkit/core/openapi"
	"github.com/artpar/actionkit/domain/action"
	"github.com/artpar/actionkit/ports"
	"github.com/artpar/actionkit/web"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Holder
	DB         *sqlite.DB
	Metrics    *metrics.Collector
	Registry   *action.Registry
	HTTPServer *http.Server

	store ports.TaskStore
	tasks *app.TaskService
}

// New creates and initializes the application from a config file path.
// An empty path falls back to environment configuration.
func New(configPath string) (*App, error) {
	cfg, err := config.LoadWithFallback(configPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, configPath)
}

// NewWithConfig creates and initializes the application from an already
// loaded config.
func NewWithConfig(cfg *config.Config, configPath string) (*App, error) {
	logger := SetupLogger(cfg.Logging)
	logger.Info().Msg("initializing actionkit taskboard")

	a := &App{Logger: logger}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			holder, err := config.NewHolder(configPath, logger)
			if err != nil {
				return nil, fmt.Errorf("config holder: %w", err)
			}
			a.Config = holder
		}
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		logger.Info().Msg("prometheus metrics enabled")
	}

	if a.Config != nil && a.Metrics != nil {
		a.Config.OnChange(func(*config.Config) {
			a.Metrics.ConfigReloads.Inc()
		})
	}

	if err := a.initStore(cfg); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	if err := a.initHTTPServer(cfg); err != nil {
		return nil, fmt.Errorf("init http server: %w", err)
	}

	return a, nil
}

// SetupLogger builds the application logger from logging config.
func SetupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func (a *App) initStore(cfg *config.Config) error {
	switch cfg.Database.Driver {
	case "memory":
		a.store = memory.NewTaskStore()
		a.Logger.Info().Msg("using in-memory task store")
	default:
		db, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return fmt.Errorf("migrate: %w", err)
		}
		a.DB = db
		a.store = sqlite.NewTaskStore(db)
		a.Logger.Info().Str("dsn", cfg.Database.DSN).Msg("sqlite task store initialized")
	}
	return nil
}

func (a *App) initHTTPServer(cfg *config.Config) error {
	a.tasks = app.NewTaskService(app.TaskDeps{
		Store:  a.store,
		Clock:  clock.Real{},
		IDGen:  idgen.UUID{},
		Logger: a.Logger,
	})

	a.Registry = action.NewRegistry(taskActions(a.tasks)...)

	templates, err := NewTemplates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	engine := app.NewEngine(app.EngineDeps{
		Logger:  a.Logger,
		Metrics: a.Metrics,
	})

	var authenticator ports.Authenticator
	if cfg.Auth.TokenHash != "" {
		authenticator = NewTokenAuthenticator(cfg.Auth.TokenHash, hasher.NewBcrypt(0))
		a.Logger.Info().Msg("bearer token authentication enabled")
	}

	handler := web.NewHandler(web.Deps{
		Registry:      a.Registry,
		Engine:        engine,
		Templates:     templates,
		Authenticator: authenticator,
		Authorizer:    PermitAll{},
		Logger:        a.Logger,
		Metrics:       a.Metrics,
		Version:       cfg.API.Version,
	})

	router := a.buildRouter(cfg, handler)

	a.HTTPServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	a.Logger.Info().Str("addr", a.HTTPServer.Addr).Msg("http server configured")
	return nil
}

func (a *App) buildRouter(cfg *config.Config, handler *web.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(web.RequestID)
	r.Use(web.RequestLogger(a.Logger))
	r.Use(web.Recoverer(a.Logger))
	r.Use(web.MethodOverride)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	handler.MountResource(r, "/tasks", "tasks")
	r.Post("/tasks/{id}/toggle", handler.Action("tasks.toggle"))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/tasks", http.StatusFound)
	})

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	if cfg.OpenAPI.Enabled {
		generator := openapi.NewGenerator(a.Registry)
		generator.SetInfo(openapi.Info{
			Title:       "Taskboard API",
			Version:     strings.TrimPrefix(cfg.API.Version, "v"),
			Description: "Declarative actions demo",
		})
		r.Handle("/openapi.json", openapi.NewHandler(generator, a.Logger))
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/openapi.json"),
		))
		a.Logger.Info().Msg("openapi docs enabled at /swagger/")
	}

	return r
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	if a.Config != nil {
		if err := a.Config.WatchFile(); err != nil {
			a.Logger.Warn().Err(err).Msg("config watch disabled")
		}
		a.Config.WatchSignals()
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.HTTPServer.Addr).Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.Config != nil {
		a.Config.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}
