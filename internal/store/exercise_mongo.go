package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/exercise"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID       string `bson:"_id"`
	Username string `bson:"username"`
}

type exerciseDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Description string    `bson:"description"`
	Duration    int       `bson:"duration"`
	Date        time.Time `bson:"date"`
}

// ExerciseMongoStore is a MongoDB implementation of exercise.Repository.
type ExerciseMongoStore struct {
	users     *mongo.Collection
	exercises *mongo.Collection
}

// NewExerciseMongoStore creates a new MongoDB-backed exercise store.
func NewExerciseMongoStore(db *mongo.Database) *ExerciseMongoStore {
	return &ExerciseMongoStore{
		users:     db.Collection("users"),
		exercises: db.Collection("exercises"),
	}
}

// EnsureIndexes creates the unique username index and the log query index.
func (s *ExerciseMongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	_, err = s.exercises.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create exercise indexes: %w", err)
	}

	return nil
}

func (s *ExerciseMongoStore) CreateUser(ctx context.Context, user *exercise.User) error {
	_, err := s.users.InsertOne(ctx, userDocument{ID: user.ID, Username: user.Username})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exercise.ErrUsernameTaken
		}

		return err
	}

	return nil
}

func (s *ExerciseMongoStore) ListUsers(ctx context.Context) ([]exercise.User, error) {
	cur, err := s.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]exercise.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, exercise.User{ID: d.ID, Username: d.Username})
	}

	return users, nil
}

func (s *ExerciseMongoStore) GetUser(ctx context.Context, id string) (*exercise.User, error) {
	var doc userDocument

	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, exercise.ErrUserNotFound
		}

		return nil, err
	}

	return &exercise.User{ID: doc.ID, Username: doc.Username}, nil
}

func (s *ExerciseMongoStore) AddExercise(ctx context.Context, e *exercise.Exercise) error {
	_, err := s.exercises.InsertOne(ctx, exerciseDocument{
		ID:          e.ID,
		UserID:      e.UserID,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.Date,
	})

	return err
}

func (s *ExerciseMongoStore) ListExercises(ctx context.Context, filter exercise.LogFilter) ([]exercise.Exercise, error) {
	query := bson.M{"user_id": filter.UserID}

	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}

	if filter.To != nil {
		dateRange["$lte"] = *filter.To
	}

	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := s.exercises.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var docs []exerciseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	exercises := make([]exercise.Exercise, 0, len(docs))
	for _, d := range docs {
		exercises = append(exercises, exercise.Exercise{
			ID:          d.ID,
			UserID:      d.UserID,
			Description: d.Description,
			Duration:    d.Duration,
			Date:        d.Date.UTC(),
		})
	}

	return exercises, nil
}

// Compile-time check.
var _ exercise.Repository = (*ExerciseMongoStore)(nil)
