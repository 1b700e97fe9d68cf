package exercise

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isacvale/fcc-timestamp/internal/timestamp"
)

// NewExercise is the input for logging an exercise. Date is optional
// (yyyy-mm-dd) and defaults to today.
type NewExercise struct {
	UserID      string
	Description string
	Duration    int
	Date        string
}

// LogQuery is the raw log query as received from a client.
type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  int
}

// Log is a user's filtered exercise log.
type Log struct {
	User      User
	Exercises []Exercise
}

// Service implements the exercise tracker.
type Service struct {
	store Repository
	now   func() time.Time
	newID func() string
}

// NewService creates a new exercise tracker service.
func NewService(store Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		store: store,
		now:   now,
		newID: uuid.NewString,
	}
}

// CreateUser registers a new username.
func (s *Service) CreateUser(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	user := &User{ID: s.newID(), Username: username}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Users lists every registered user.
func (s *Service) Users(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

// AddExercise logs an exercise for an existing user.
func (s *Service) AddExercise(ctx context.Context, in NewExercise) (*User, *Exercise, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	if in.Duration <= 0 {
		return nil, nil, fmt.Errorf("%w: duration must be a positive number of minutes", ErrInvalidInput)
	}

	date := today(s.now())

	if strings.TrimSpace(in.Date) != "" {
		parsed, err := timestamp.ParseDate(in.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: date must be yyyy-mm-dd", ErrInvalidInput)
		}

		date = parsed
	}

	user, err := s.store.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, nil, err
	}

	exercise := &Exercise{
		ID:          s.newID(),
		UserID:      user.ID,
		Description: strings.TrimSpace(in.Description),
		Duration:    in.Duration,
		Date:        date,
	}

	if err := s.store.AddExercise(ctx, exercise); err != nil {
		return nil, nil, err
	}

	return user, exercise, nil
}

// Log returns the user's exercises, filtered by the optional date range and limit.
func (s *Service) Log(ctx context.Context, q LogQuery) (*Log, error) {
	filter := LogFilter{UserID: q.UserID, Limit: q.Limit}

	if q.From != "" {
		from, err := timestamp.ParseDate(q.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from must be yyyy-mm-dd", ErrInvalidInput)
		}

		filter.From = &from
	}

	if q.To != "" {
		to, err := timestamp.ParseDate(q.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to must be yyyy-mm-dd", ErrInvalidInput)
		}

		filter.To = &to
	}

	user, err := s.store.GetUser(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.store.ListExercises(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &Log{User: *user, Exercises: exercises}, nil
}

func today(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
