// Command server runs the timestamp, whoami, file metadata, exercise tracker
// and URL shortener microservices behind one HTTP listener.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/isacvale/fcc-timestamp/internal/container"
	"github.com/isacvale/fcc-timestamp/internal/shortener"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newInjector(options *container.Options) *do.Injector {
	injector := do.New()

	do.ProvideValue(injector, options)
	container.LoggerPackage(injector)
	container.MongoPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.RepositoryPackage(injector)
	container.ShortenerPackage(injector)
	container.ExercisePackage(injector)
	container.RateLimitPackage(injector)
	container.PublisherGroupPackage(injector)
	container.HealthPackage(injector)
	container.HTTPPackage(injector)

	return injector
}

// newServer builds the API, which registers every route on the router.
func newServer(injector *do.Injector, port int) (*http.Server, error) {
	if _, err := do.Invoke[huma.API](injector); err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           do.MustInvoke[*chi.Mux](injector),
		ReadHeaderTimeout: readHeaderTimeout,
	}, nil
}

func main() {
	// SERVICE_* variables may also come straight from the environment.
	_ = godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := newInjector(options)
		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			var err error

			server, err = newServer(injector, options.Port)
			if err != nil {
				logger.Fatal("failed to build api", zap.Error(err))
			}

			logger.Info("server starting",
				zap.Int("port", options.Port),
				zap.String("store", options.Store),
				zap.Duration("retention", time.Duration(options.RetentionSeconds)*time.Second),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("http shutdown failed", zap.Error(err))
				}
			}

			// Sweeps started by the last requests finish before the stores close.
			if svc, err := do.Invoke[*shortener.Service](injector); err == nil {
				svc.Wait()
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("dependency shutdown failed", zap.Error(err))
			}

			logger.Info("shutdown complete")
			_ = logger.Sync()
		})
	})

	cli.Run()
}
