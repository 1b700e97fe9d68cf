package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/isacvale/fcc-timestamp/internal/handlers"
)

// RequestMeta adds client IP, user-agent, referrer and language to the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  ClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
			Language:  ctx.Header("Accept-Language"),
		}

		next(huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta)))
	}
}
