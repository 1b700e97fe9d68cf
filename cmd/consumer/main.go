// Command consumer stores the analytics events the server publishes to
// Redis Streams.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/isacvale/fcc-timestamp/internal/container"
	"github.com/isacvale/fcc-timestamp/internal/messaging"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// optionsFromEnv reads the subset of server options the consumer needs.
func optionsFromEnv() *container.Options {
	return &container.Options{
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Store:         getEnv("STORE", container.StoreMongo),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "shortener"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func main() {
	_ = godotenv.Load()

	opts := optionsFromEnv()

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.MongoPackage(injector)
	container.ConsumerGroupPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, err := do.Invoke[*messaging.ConsumerGroup](injector)
	if err != nil {
		logger.Fatal("failed to build consumers", zap.Error(err))
	}

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start consumers", zap.Error(err))
	}

	logger.Info("consuming analytics events", zap.String("store", opts.Store))

	<-ctx.Done()
	logger.Info("shutting down")

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}

	_ = logger.Sync()
}
