package store

import (
	"context"
	"sort"
	"sync"

	"github.com/isacvale/fcc-timestamp/internal/exercise"
)

// ExerciseMemoryStore is an in-memory implementation of exercise.Repository.
type ExerciseMemoryStore struct {
	mu        sync.RWMutex
	users     []exercise.User
	usernames map[string]struct{}
	exercises []exercise.Exercise
}

// NewExerciseMemoryStore creates a new in-memory exercise store.
func NewExerciseMemoryStore() *ExerciseMemoryStore {
	return &ExerciseMemoryStore{
		usernames: make(map[string]struct{}),
	}
}

func (s *ExerciseMemoryStore) CreateUser(_ context.Context, user *exercise.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[user.Username]; taken {
		return exercise.ErrUsernameTaken
	}

	s.usernames[user.Username] = struct{}{}
	s.users = append(s.users, *user)

	return nil
}

func (s *ExerciseMemoryStore) ListUsers(_ context.Context) ([]exercise.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]exercise.User, len(s.users))
	copy(users, s.users)

	return users, nil
}

func (s *ExerciseMemoryStore) GetUser(_ context.Context, id string) (*exercise.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}

	return nil, exercise.ErrUserNotFound
}

func (s *ExerciseMemoryStore) AddExercise(_ context.Context, e *exercise.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.exercises = append(s.exercises, *e)

	return nil
}

func (s *ExerciseMemoryStore) ListExercises(_ context.Context, filter exercise.LogFilter) ([]exercise.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]exercise.Exercise, 0)

	for i := range s.exercises {
		if filter.Matches(&s.exercises[i]) {
			matched = append(matched, s.exercises[i])
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// Compile-time check.
var _ exercise.Repository = (*ExerciseMemoryStore)(nil)
