package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/isacvale/fcc-timestamp/internal/handlers"
	"github.com/isacvale/fcc-timestamp/internal/middleware"
	"github.com/isacvale/fcc-timestamp/internal/ratelimit"
	"github.com/isacvale/fcc-timestamp/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testOutput struct {
	Body string
}

func newTestAPI(t *testing.T) (*chi.Mux, huma.API) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))

	return router, api
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestRequestMeta(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		wantIP  string
	}{
		{"uses first X-Forwarded-For entry", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"uses single X-Forwarded-For entry", map[string]string{"X-Forwarded-For": " 203.0.113.8 "}, "203.0.113.8"},
		{"falls back to X-Real-IP", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"falls back to remote address", nil, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, api := newTestAPI(t)
			api.UseMiddleware(middleware.RequestMeta(api))

			got := make(chan handlers.RequestMeta, 1)

			huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
				got <- handlers.RequestMetaFromContext(ctx)

				return &testOutput{Body: "ok"}, nil
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("User-Agent", "TestAgent/1.0")
			req.Header.Set("Referer", "https://example.com")
			req.Header.Set("Accept-Language", "en-US")

			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			w := serve(router, req)

			require.Equal(t, http.StatusOK, w.Code)

			meta := <-got
			assert.Equal(t, tt.wantIP, meta.ClientIP)
			assert.Equal(t, "TestAgent/1.0", meta.UserAgent)
			assert.Equal(t, "https://example.com", meta.Referrer)
			assert.Equal(t, "en-US", meta.Language)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	setup := func(t *testing.T, policy *ratelimit.Policy, op huma.Operation) *chi.Mux {
		t.Helper()

		router, api := newTestAPI(t)
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), policy)
		api.UseMiddleware(middleware.RateLimiter(api, limiter, zap.NewNop()))

		huma.Register(api, op, func(_ context.Context, _ *struct{}) (*testOutput, error) {
			return &testOutput{Body: "ok"}, nil
		})

		return router
	}

	strict := &ratelimit.Policy{Limits: map[ratelimit.Scope][]ratelimit.LimitConfig{
		ratelimit.ScopeRead: {{Window: time.Minute, Max: 2}},
	}}

	t.Run("returns 429 once the policy limit is exceeded", func(t *testing.T) {
		router := setup(t, strict, huma.Operation{Method: http.MethodGet, Path: "/test"})

		for range 2 {
			w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "read scope")
	})

	t.Run("keys clients by ip and user agent", func(t *testing.T) {
		router := setup(t, strict, huma.Operation{Method: http.MethodGet, Path: "/test"})

		for range 2 {
			serve(router, httptest.NewRequest(http.MethodGet, "/test", nil))
		}

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("User-Agent", "Other/2.0")

		w := serve(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("applies endpoint limits from operation metadata", func(t *testing.T) {
		router := setup(t, nil, huma.Operation{
			Method: http.MethodPost,
			Path:   "/create",
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{
					Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 1}},
				},
			},
		})

		w := serve(router, httptest.NewRequest(http.MethodPost, "/create", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = serve(router, httptest.NewRequest(http.MethodPost, "/create", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("skips disabled endpoints", func(t *testing.T) {
		router := setup(t, strict, huma.Operation{
			Method: http.MethodGet,
			Path:   "/free",
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
			},
		})

		for range 5 {
			w := serve(router, httptest.NewRequest(http.MethodGet, "/free", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router, api := newTestAPI(t)
	api.UseMiddleware(middleware.RequestLogger(zap.New(core)))

	huma.Get(api, "/items/{id}", func(_ context.Context, _ *struct {
		ID string `path:"id"`
	},
	) (*testOutput, error) {
		return &testOutput{Body: "ok"}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/items/42", strings.NewReader(""))
	req.Header.Set("User-Agent", "TestAgent/1.0")

	w := serve(router, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "/items/42", fields["path"])
	assert.Equal(t, "/items/{id}", fields["route"])
	assert.Equal(t, "TestAgent/1.0", fields["user_agent"])
}
