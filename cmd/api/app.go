package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"stookwijzer/internal/config"
	"stookwijzer/internal/observability"
	"stookwijzer/internal/stookwijzer"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router             *gin.Engine
	api                huma.API
	logger             *slog.Logger
	clock              clockwork.Clock
	stookwijzerService stookwijzer.Service
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	svc, err := stookwijzer.NewStookwijzerService(cfg, metrics, logger)
	if err != nil {
		return nil, err
	}

	return NewAppWithService(cfg, svc, clockwork.NewRealClock(), logger), nil
}

// NewAppWithService creates an application around an existing advice service.
func NewAppWithService(cfg *config.Config, svc stookwijzer.Service, clock clockwork.Clock, logger *slog.Logger) *App {
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))

	// Create Huma API on top of the gin router
	humaConfig := huma.DefaultConfig("Stookwijzer API", "1.0.0")
	humaConfig.Info.Description = "Wood-burning advice for locations in the Netherlands, based on RIVM Stookwijzer data"
	// Keep response bodies free of the $schema link field
	humaConfig.CreateHooks = nil

	app := &App{
		router:             router,
		api:                humagin.New(router, humaConfig),
		logger:             logger,
		clock:              clock,
		stookwijzerService: svc,
	}

	// Register routes
	app.registerRoutes()

	logger.Info("application initialized")

	return app
}

// Run serves HTTP until ctx is cancelled, then drains open connections.
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ServeHTTP delegates to the router, useful for testing.
func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

func (app *App) metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// corsConfig allows any origin when the list contains "*". Credentials are
// never allowed together with a wildcard.
func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
