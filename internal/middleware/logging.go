package middleware

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per handled operation.
func RequestLogger(logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		route := ""
		if op := ctx.Operation(); op != nil {
			route = op.Path
		}

		u := ctx.URL()
		fields := []zap.Field{
			zap.Int("status", ctx.Status()),
			zap.String("method", ctx.Method()),
			zap.String("path", u.Path),
			zap.String("route", route),
			zap.String("ip", ClientIP(ctx)),
			zap.String("user_agent", ctx.Header("User-Agent")),
			zap.Duration("latency", time.Since(start)),
		}

		if ctx.Status() >= 500 {
			logger.Error("http request", fields...)

			return
		}

		logger.Info("http request", fields...)
	}
}
