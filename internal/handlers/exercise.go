package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/isacvale/fcc-timestamp/internal/exercise"
	"github.com/isacvale/fcc-timestamp/internal/timestamp"
	"go.uber.org/zap"
)

// FormRequest is a form or JSON body read as flat key/value pairs.
type FormRequest struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte `contentType:"application/x-www-form-urlencoded"`
}

type newUserForm struct {
	Username string `validate:"required,max=64"`
}

type addExerciseForm struct {
	UserID      string `validate:"required"`
	Description string `validate:"required"`
	Duration    int    `validate:"gt=0"`
	Date        string `validate:"omitempty,datetime=2006-01-02"`
}

// UserBody is a registered user.
type UserBody struct {
	ID       string `doc:"User id"  example:"5fb5853f734231456ccb3b05" json:"_id"`
	Username string `doc:"Username" example:"fcc_test"                 json:"username"`
}

// UserResponse is the response for creating a user.
type UserResponse struct {
	Body UserBody
}

// UsersResponse lists every user.
type UsersResponse struct {
	Body []UserBody
}

// ExerciseResponse is the response for logging an exercise.
type ExerciseResponse struct {
	Body struct {
		ID          string `json:"_id"`
		Username    string `json:"username"`
		Description string `json:"description"`
		Duration    int    `json:"duration"`
		Date        string `example:"Mon Jan 01 1990" json:"date"`
	}
}

// LogRequest is the query for a user's exercise log.
type LogRequest struct {
	UserID string `doc:"User id"                         query:"userId" required:"true"`
	From   string `doc:"Inclusive start date yyyy-mm-dd" query:"from"`
	To     string `doc:"Inclusive end date yyyy-mm-dd"   query:"to"`
	Limit  int    `doc:"Maximum number of entries"       minimum:"0"    query:"limit"`
}

// LogEntry is one exercise within a log.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `example:"Mon Jan 01 1990" json:"date"`
}

// LogResponse is a user's exercise log.
type LogResponse struct {
	Body struct {
		ID       string     `json:"_id"`
		Username string     `json:"username"`
		Count    int        `doc:"Number of entries returned" json:"count"`
		Log      []LogEntry `json:"log"`
	}
}

// ExerciseHandler serves the exercise tracker.
type ExerciseHandler struct {
	service *exercise.Service
	logger  *zap.Logger
}

// NewExerciseHandler creates a new exercise tracker handler.
func NewExerciseHandler(service *exercise.Service, logger *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{service: service, logger: logger}
}

func (h *ExerciseHandler) CreateUser(ctx context.Context, req *FormRequest) (*UserResponse, error) {
	values, err := bodyValues(req.ContentType, req.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("malformed request body", err)
	}

	form := newUserForm{Username: strings.TrimSpace(values.Get("username"))}
	if err := validate.Struct(form); err != nil {
		return nil, huma.Error400BadRequest(validationMessage(err))
	}

	user, err := h.service.CreateUser(ctx, form.Username)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &UserResponse{Body: UserBody{ID: user.ID, Username: user.Username}}, nil
}

func (h *ExerciseHandler) ListUsers(ctx context.Context, _ *struct{}) (*UsersResponse, error) {
	users, err := h.service.Users(ctx)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	resp := &UsersResponse{Body: make([]UserBody, 0, len(users))}
	for _, u := range users {
		resp.Body = append(resp.Body, UserBody{ID: u.ID, Username: u.Username})
	}

	return resp, nil
}

func (h *ExerciseHandler) AddExercise(ctx context.Context, req *FormRequest) (*ExerciseResponse, error) {
	values, err := bodyValues(req.ContentType, req.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("malformed request body", err)
	}

	userID := values.Get("userId")
	if userID == "" {
		userID = values.Get(":_id")
	}

	duration, err := strconv.Atoi(strings.TrimSpace(values.Get("duration")))
	if err != nil {
		return nil, huma.Error400BadRequest("duration must be a whole number of minutes")
	}

	form := addExerciseForm{
		UserID:      userID,
		Description: strings.TrimSpace(values.Get("description")),
		Duration:    duration,
		Date:        strings.TrimSpace(values.Get("date")),
	}
	if err := validate.Struct(form); err != nil {
		return nil, huma.Error400BadRequest(validationMessage(err))
	}

	user, logged, err := h.service.AddExercise(ctx, exercise.NewExercise{
		UserID:      form.UserID,
		Description: form.Description,
		Duration:    form.Duration,
		Date:        form.Date,
	})
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	resp := &ExerciseResponse{}
	resp.Body.ID = user.ID
	resp.Body.Username = user.Username
	resp.Body.Description = logged.Description
	resp.Body.Duration = logged.Duration
	resp.Body.Date = logged.Date.Format(timestamp.DateLayout)

	return resp, nil
}

func (h *ExerciseHandler) Log(ctx context.Context, req *LogRequest) (*LogResponse, error) {
	log, err := h.service.Log(ctx, exercise.LogQuery{
		UserID: req.UserID,
		From:   req.From,
		To:     req.To,
		Limit:  req.Limit,
	})
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	resp := &LogResponse{}
	resp.Body.ID = log.User.ID
	resp.Body.Username = log.User.Username
	resp.Body.Count = len(log.Exercises)
	resp.Body.Log = make([]LogEntry, 0, len(log.Exercises))

	for _, e := range log.Exercises {
		resp.Body.Log = append(resp.Body.Log, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.Date.Format(timestamp.DateLayout),
		})
	}

	return resp, nil
}

func (h *ExerciseHandler) toHTTPError(err error) error {
	switch {
	case errors.Is(err, exercise.ErrUserNotFound):
		return huma.Error404NotFound(exercise.ErrUserNotFound.Error())
	case errors.Is(err, exercise.ErrUsernameTaken):
		return huma.Error400BadRequest(exercise.ErrUsernameTaken.Error())
	case errors.Is(err, exercise.ErrInvalidInput):
		return huma.Error400BadRequest(err.Error())
	default:
		h.logger.Error("exercise tracker failure", zap.Error(err))

		return huma.Error500InternalServerError("internal server error")
	}
}
