package exercise

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserNotFound is returned when a user id is unknown.
	ErrUserNotFound = errors.New("unknown _id")
	// ErrUsernameTaken is returned when creating a user with an existing name.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidInput wraps validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// User is a person logging exercises.
type User struct {
	ID       string
	Username string
}

// Exercise is one logged session. Date is a calendar day at midnight UTC.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    int
	Date        time.Time
}

// LogFilter narrows a user's exercise log. From and To are inclusive;
// Limit <= 0 means no limit.
type LogFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// Matches reports whether e falls inside the filter's date range.
func (f LogFilter) Matches(e *Exercise) bool {
	if e.UserID != f.UserID {
		return false
	}

	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}

	if f.To != nil && e.Date.After(*f.To) {
		return false
	}

	return true
}

// Repository persists users and exercises.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	ListUsers(ctx context.Context) ([]User, error)
	// GetUser returns ErrUserNotFound when the id is unknown.
	GetUser(ctx context.Context, id string) (*User, error)
	AddExercise(ctx context.Context, exercise *Exercise) error
	// ListExercises returns the matching exercises ordered by date ascending.
	ListExercises(ctx context.Context, filter LogFilter) ([]Exercise, error)
}
