package shortener

import (
	"context"
	"errors"
	"time"
)

// DefaultRetention is how long a short URL stays resolvable after creation.
const DefaultRetention = 2 * time.Minute

var (
	// ErrNotFound is returned when no record exists for a code.
	ErrNotFound = errors.New("short url not found")
	// ErrConflict is returned by a Repository when the code is already taken.
	ErrConflict = errors.New("short code already exists")
	// ErrInvalidURL is returned when the URL host does not resolve.
	ErrInvalidURL = errors.New("invalid url")
)

// Code represents a short URL code.
type Code string

// ShortURL represents a shortened URL record. Records are never mutated.
type ShortURL struct {
	Code      Code
	Original  string
	CreatedAt time.Time
}

// Age returns how old the record is at the given instant.
func (s *ShortURL) Age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}

// Repository is the record store contract.
type Repository interface {
	// Save inserts a new record. It returns ErrConflict if the code is taken.
	Save(ctx context.Context, shortURL *ShortURL) error
	// GetByCode returns ErrNotFound when the code does not exist.
	GetByCode(ctx context.Context, code Code) (*ShortURL, error)
	// DeleteOlderThan removes every record created strictly before cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
