package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/timestamp"
)

// InvalidDateMessage is the error body returned for unparseable dates.
const InvalidDateMessage = "Invalid Date"

// TimestampRequest is the request for converting a date.
type TimestampRequest struct {
	Date string `doc:"A date string or Unix milliseconds" example:"2015-12-25" path:"date"`
}

// TimestampBody is either the unix/utc pair or an error message.
type TimestampBody struct {
	Unix  *int64 `doc:"Unix time in milliseconds"    example:"1451001600000"                 json:"unix,omitempty"`
	UTC   string `doc:"The date in HTTP date format" example:"Fri, 25 Dec 2015 00:00:00 GMT" json:"utc,omitempty"`
	Error string `doc:"Set when the date is invalid" example:"Invalid Date"                  json:"error,omitempty"`
}

// TimestampResponse is the response for the timestamp endpoints.
type TimestampResponse struct {
	Body TimestampBody
}

// TimestampHandler serves the timestamp microservice.
type TimestampHandler struct {
	now func() time.Time
}

// NewTimestampHandler creates a timestamp handler reading the current time from now.
func NewTimestampHandler(now func() time.Time) *TimestampHandler {
	if now == nil {
		now = time.Now
	}

	return &TimestampHandler{now: now}
}

// Now returns the current instant.
func (h *TimestampHandler) Now(_ context.Context, _ *struct{}) (*TimestampResponse, error) {
	return stampResponse(timestamp.New(h.now())), nil
}

// Convert parses the path date.
func (h *TimestampHandler) Convert(_ context.Context, req *TimestampRequest) (*TimestampResponse, error) {
	t, err := timestamp.Parse(req.Date, h.now())
	if err != nil {
		if errors.Is(err, timestamp.ErrInvalidDate) {
			resp := &TimestampResponse{}
			resp.Body.Error = InvalidDateMessage

			return resp, nil
		}

		return nil, err
	}

	return stampResponse(timestamp.New(t)), nil
}

func stampResponse(stamp timestamp.Stamp) *TimestampResponse {
	unix := stamp.Unix

	resp := &TimestampResponse{}
	resp.Body.Unix = &unix
	resp.Body.UTC = stamp.UTC

	return resp
}
