// Package server owns the HTTP serving lifecycle: middleware stack, route
// registration, startup seeding, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anvikawear/anvika/app/routes"
	"github.com/anvikawear/anvika/config"
	"github.com/anvikawear/anvika/database/seeders"
	"github.com/anvikawear/anvika/pkg/database"
	"github.com/anvikawear/anvika/pkg/logger"
	"github.com/anvikawear/anvika/pkg/metrics"
	"github.com/anvikawear/anvika/pkg/middleware"
	"github.com/anvikawear/anvika/pkg/reqid"
	"github.com/anvikawear/anvika/pkg/router"
)

const shutdownTimeout = 10 * time.Second

// Start connects to MongoDB, seeds baseline data, and serves the API until
// SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Disconnect(disconnectCtx)
	}()

	// Optionally mirror log records into the document store.
	var mongoLog *logger.MongoHandler
	if config.LogToMongo() {
		mongoLog = logger.NewMongoHandler(database.DB(), database.LogsCollection)
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mongoLog))
		defer mongoLog.Close()
	}

	seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := seeders.RunAll(seedCtx, database.DB()); err != nil {
		cancel()
		return err
	}
	cancel()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           BuildHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", config.AppPort(), "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// BuildHandler constructs the full HTTP handler: global middleware stack,
// metrics endpoint, and the API routes.
func BuildHandler() http.Handler {
	r := NewRouter()
	routes.RegisterAPI(r, database.DB())
	return r.Handler()
}

// NewRouter returns a router with the global middleware stack applied,
// outermost first:
//
//  1. Prometheus metrics — outermost for accurate total latency
//  2. Recovery           — catches panics before they kill the goroutine
//  3. Request ID         — inject unique ID before anything logs
//  4. Logger             — logs request_id from context
//  5. CORS               — storefront origin allowlist
//  6. Rate limiter       — reject abusers early
func NewRouter() *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus endpoint sits outside /api; no auth, no rate-limit concerns
	// at this volume.
	r.Get("/metrics", "metrics", metrics.Handler())

	return r
}
