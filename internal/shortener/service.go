package shortener

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	maxCodeAttempts     = 5
	defaultSweepTimeout = 10 * time.Second
)

// Service creates and resolves short URLs. Every successful creation
// triggers a retention sweep in the background.
type Service struct {
	store        Repository
	sweeper      *Sweeper
	resolver     HostResolver
	clock        Clock
	generateCode CodeGenerator
	logger       *zap.Logger
	sweepTimeout time.Duration
	sweeps       sync.WaitGroup
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the wall clock.
func WithClock(clock Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// WithResolver overrides the DNS resolver.
func WithResolver(resolver HostResolver) Option {
	return func(s *Service) { s.resolver = resolver }
}

// WithSweepTimeout bounds each background sweep.
func WithSweepTimeout(timeout time.Duration) Option {
	return func(s *Service) { s.sweepTimeout = timeout }
}

// NewService creates a new shortener service.
func NewService(
	store Repository,
	sweeper *Sweeper,
	generator CodeGenerator,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		store:        store,
		sweeper:      sweeper,
		resolver:     net.DefaultResolver,
		clock:        SystemClock,
		generateCode: generator,
		logger:       logger,
		sweepTimeout: defaultSweepTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates that the URL host resolves, stores a new record holding
// the unmodified URL and schedules a retention sweep.
func (s *Service) Create(ctx context.Context, rawURL string) (*ShortURL, error) {
	host := HostOf(rawURL)
	if host == "" {
		return nil, ErrInvalidURL
	}

	addrs, err := s.resolver.LookupHost(ctx, host)
	if err != nil || len(addrs) == 0 {
		s.logger.Debug("host lookup failed", zap.String("host", host), zap.Error(err))

		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, host)
	}

	shortURL, err := s.save(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	s.triggerSweep(ctx)

	return shortURL, nil
}

func (s *Service) save(ctx context.Context, rawURL string) (*ShortURL, error) {
	for range maxCodeAttempts {
		shortURL := &ShortURL{
			Code:      Code(s.generateCode()),
			Original:  rawURL,
			CreatedAt: s.clock.Now(),
		}

		err := s.store.Save(ctx, shortURL)
		if err == nil {
			return shortURL, nil
		}

		if !errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("save short url: %w", err)
		}

		s.logger.Warn("short code collision, retrying", zap.String("code", string(shortURL.Code)))
	}

	return nil, fmt.Errorf("save short url: %w after %d attempts", ErrConflict, maxCodeAttempts)
}

// triggerSweep runs the sweeper without holding up the caller. The sweep is
// detached from ctx so a client disconnect does not abort it.
func (s *Service) triggerSweep(ctx context.Context) {
	now := s.clock.Now()
	sweepCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sweepTimeout)

	s.sweeps.Add(1)

	go func() {
		defer s.sweeps.Done()
		defer cancel()

		s.sweeper.Sweep(sweepCtx, now)
	}()
}

// Resolve returns the redirect target for code, with an http:// prefix
// ensured.
func (s *Service) Resolve(ctx context.Context, code Code) (string, error) {
	shortURL, err := s.store.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("get short url: %w", err)
	}

	if shortURL == nil {
		return "", ErrNotFound
	}

	return EnsureScheme(shortURL.Original), nil
}

// Wait blocks until all scheduled sweeps have finished.
func (s *Service) Wait() {
	s.sweeps.Wait()
}

// Shutdown drains in-flight sweeps.
func (s *Service) Shutdown() error {
	s.Wait()

	return nil
}
