package ratelimit

import (
	"context"
	"fmt"
)

// Exceeded describes the limit a request ran into.
type Exceeded struct {
	Scope  Scope
	Config LimitConfig
	Count  int64
}

func (e *Exceeded) String() string {
	if e.Scope == "" {
		return fmt.Sprintf("%d/%d requests in %s", e.Count, e.Config.Max, e.Config.Window)
	}

	return fmt.Sprintf("%s scope, %d/%d requests in %s", e.Scope, e.Count, e.Config.Max, e.Config.Window)
}

// Request identifies what is being limited.
type Request struct {
	ClientKey string
	Method    string
	Route     string
	Endpoint  *EndpointConfig
}

// Limiter enforces a Policy plus per-endpoint overrides against a Store.
type Limiter struct {
	store  Store
	policy *Policy
}

// NewLimiter creates a limiter. A nil policy means DefaultPolicy.
func NewLimiter(store Store, policy *Policy) *Limiter {
	if policy == nil {
		policy = DefaultPolicy()
	}

	return &Limiter{store: store, policy: policy}
}

// Check records the request and reports the first limit it exceeds, or nil
// when it is allowed.
func (l *Limiter) Check(ctx context.Context, req Request) (*Exceeded, error) {
	cfg := req.Endpoint

	if cfg != nil && cfg.Disabled {
		return nil, nil
	}

	if cfg != nil && len(cfg.Limits) > 0 {
		for _, limit := range cfg.Limits {
			key := fmt.Sprintf("%s:route:%s:%d", req.ClientKey, req.Route, limit.Window.Milliseconds())

			exceeded, err := l.record(ctx, key, "", limit)
			if err != nil || exceeded != nil {
				return exceeded, err
			}
		}

		return nil, nil
	}

	for _, scope := range ScopesFor(req.Method, cfg) {
		for _, limit := range l.policy.Limits[scope] {
			key := fmt.Sprintf("%s:%s:%d", req.ClientKey, scope, limit.Window.Milliseconds())

			exceeded, err := l.record(ctx, key, scope, limit)
			if err != nil || exceeded != nil {
				return exceeded, err
			}
		}
	}

	return nil, nil
}

func (l *Limiter) record(ctx context.Context, key string, scope Scope, limit LimitConfig) (*Exceeded, error) {
	count, err := l.store.Record(ctx, key, limit.Window)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", key, err)
	}

	if count > limit.Max {
		return &Exceeded{Scope: scope, Config: limit, Count: count}, nil
	}

	return nil, nil
}
