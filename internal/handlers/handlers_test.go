package handlers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/isacvale/fcc-timestamp/internal/analytics"
	"github.com/isacvale/fcc-timestamp/internal/exercise"
	"github.com/isacvale/fcc-timestamp/internal/handlers"
	"github.com/isacvale/fcc-timestamp/internal/middleware"
	"github.com/isacvale/fcc-timestamp/internal/shortener"
	"github.com/isacvale/fcc-timestamp/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2015, time.December, 25, 0, 0, 0, 0, time.UTC)

// stubResolver resolves only example.com.
type stubResolver struct{}

func (stubResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if host == "example.com" {
		return []string{"93.184.216.34"}, nil
	}

	return nil, errors.New("no such host")
}

// recordedEvents captures published analytics events.
type recordedEvents struct {
	mu       sync.Mutex
	created  []analytics.URLCreatedEvent
	accessed []analytics.URLAccessedEvent
}

func (r *recordedEvents) publishers(err error) *analytics.Publishers {
	return &analytics.Publishers{
		URLCreated: func(_ context.Context, e *analytics.URLCreatedEvent) error {
			r.mu.Lock()
			defer r.mu.Unlock()

			r.created = append(r.created, *e)

			return err
		},
		URLAccessed: func(_ context.Context, e *analytics.URLAccessedEvent) error {
			r.mu.Lock()
			defer r.mu.Unlock()

			r.accessed = append(r.accessed, *e)

			return err
		},
	}
}

type testServer struct {
	router  *chi.Mux
	store   *store.MemoryStore
	events  *recordedEvents
	service *shortener.Service
}

type serverOption struct {
	notFound   handlers.NotFoundMode
	publishErr error
}

func newTestServer(t *testing.T, opt serverOption) *testServer {
	t.Helper()

	router := chi.NewMux()
	api := handlers.NewAPI(router, "Test", "1.0.0")
	api.UseMiddleware(middleware.RequestMeta(api))

	memStore := store.NewMemoryStore()
	clock := shortener.ClockFunc(func() time.Time { return fixedNow })
	svc := shortener.NewService(
		memStore,
		shortener.NewSweeper(memStore, 0, zap.NewNop()),
		shortener.UUIDGenerator(shortener.CodeLength),
		zap.NewNop(),
		shortener.WithClock(clock),
		shortener.WithResolver(stubResolver{}),
	)
	t.Cleanup(svc.Wait)

	events := &recordedEvents{}

	handlers.RegisterPages(router)
	handlers.RegisterShortURLRoutes(api,
		handlers.NewURLHandler(svc, opt.notFound, events.publishers(opt.publishErr), zap.NewNop()))
	handlers.RegisterTimestampRoutes(api, handlers.NewTimestampHandler(func() time.Time { return fixedNow }))
	handlers.RegisterUtilityRoutes(api)
	handlers.RegisterExerciseRoutes(api, handlers.NewExerciseHandler(
		exercise.NewService(store.NewExerciseMemoryStore(), func() time.Time { return fixedNow }),
		zap.NewNop(),
	))

	return &testServer{router: router, store: memStore, events: events, service: svc}
}

func (s *testServer) do(t *testing.T, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}

func (s *testServer) postForm(t *testing.T, target, form string) *httptest.ResponseRecorder {
	t.Helper()

	return s.do(t, http.MethodPost, target, "application/x-www-form-urlencoded", strings.NewReader(form))
}

func (s *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	return s.do(t, http.MethodGet, target, "", nil)
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()

	require.Equal(t, status, w.Code, w.Body.String())
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}
