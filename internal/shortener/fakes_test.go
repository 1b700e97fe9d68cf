package shortener_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/shortener"
	"github.com/isacvale/fcc-timestamp/internal/store"
)

var errNoSuchHost = errors.New("no such host")

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// fakeResolver resolves only the listed hosts.
type fakeResolver struct {
	mu      sync.Mutex
	known   map[string]bool
	lookups []string
}

func newFakeResolver(hosts ...string) *fakeResolver {
	known := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		known[h] = true
	}

	return &fakeResolver{known: known}
}

func (r *fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lookups = append(r.lookups, host)

	if !r.known[host] {
		return nil, errNoSuchHost
	}

	return []string{"93.184.216.34"}, nil
}

// sequenceGenerator hands out the given codes in order, then repeats the last.
func sequenceGenerator(codes ...string) shortener.CodeGenerator {
	var (
		mu sync.Mutex
		i  int
	)

	return func() string {
		mu.Lock()
		defer mu.Unlock()

		code := codes[min(i, len(codes)-1)]
		i++

		return code
	}
}

// failingStore fails every operation with err.
type failingStore struct {
	err error
}

func (f *failingStore) Save(context.Context, *shortener.ShortURL) error { return f.err }

func (f *failingStore) GetByCode(context.Context, shortener.Code) (*shortener.ShortURL, error) {
	return nil, f.err
}

func (f *failingStore) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, f.err }

// nilStore reports success on lookups without returning a record.
type nilStore struct {
	failingStore
}

func (nilStore) GetByCode(context.Context, shortener.Code) (*shortener.ShortURL, error) {
	return nil, nil
}

// sweepFailingStore stores records in memory but fails every sweep.
type sweepFailingStore struct {
	*store.MemoryStore

	err error
}

func (s *sweepFailingStore) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, s.err
}
