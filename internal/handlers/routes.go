package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/isacvale/fcc-timestamp/internal/ratelimit"
)

// creationLimits bound endpoints that write new records.
var creationLimits = ratelimit.EndpointConfig{
	Limits: []ratelimit.LimitConfig{
		{Window: time.Minute, Max: 10},
		{Window: time.Hour, Max: 100},
	},
}

// RegisterShortURLRoutes registers the URL shortener routes with per-endpoint rate limit configuration.
func RegisterShortURLRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "create-short-url",
		Method:      http.MethodPost,
		Path:        CreationPagePath,
		Summary:     "Create short URL",
		Description: "Stores the URL under a fresh short code when its host resolves in DNS. " +
			"Unresolvable hosts answer 200 with an Invalid URL error body.",
		Tags: []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: creationLimits,
		},
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID: "redirect-short-url",
		Method:      http.MethodGet,
		Path:        "/api/shorturl/{short}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the URL stored under the short code, or back to the creation page when it is unknown.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeRead},
		},
	}, urlHandler.RedirectToURL)
}

// RegisterTimestampRoutes registers the timestamp routes.
func RegisterTimestampRoutes(api huma.API, h *TimestampHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "timestamp-now",
		Method:      http.MethodGet,
		Path:        "/api/timestamp",
		Summary:     "Current timestamp",
		Tags:        []string{"Timestamp"},
	}, h.Now)

	huma.Register(api, huma.Operation{
		OperationID: "timestamp-convert",
		Method:      http.MethodGet,
		Path:        "/api/timestamp/{date}",
		Summary:     "Convert a date",
		Description: "Accepts Unix milliseconds or a date string and returns both representations.",
		Tags:        []string{"Timestamp"},
	}, h.Convert)
}

// RegisterUtilityRoutes registers the header parser and file metadata routes.
func RegisterUtilityRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/api/whoami",
		Summary:     "Describe the caller",
		Tags:        []string{"Utilities"},
	}, WhoAmI)

	huma.Register(api, huma.Operation{
		OperationID: "file-analyse",
		Method:      http.MethodPost,
		Path:        "/api/fileanalyse",
		Summary:     "Analyse an uploaded file",
		Tags:        []string{"Utilities"},
	}, AnalyseFile)
}

// RegisterExerciseRoutes registers the exercise tracker routes.
func RegisterExerciseRoutes(api huma.API, h *ExerciseHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "exercise-new-user",
		Method:      http.MethodPost,
		Path:        "/api/exercise/new-user",
		Summary:     "Create user",
		Tags:        []string{"Exercise"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: creationLimits,
		},
	}, h.CreateUser)

	huma.Register(api, huma.Operation{
		OperationID: "exercise-users",
		Method:      http.MethodGet,
		Path:        "/api/exercise/users",
		Summary:     "List users",
		Tags:        []string{"Exercise"},
	}, h.ListUsers)

	huma.Register(api, huma.Operation{
		OperationID: "exercise-add",
		Method:      http.MethodPost,
		Path:        "/api/exercise/add",
		Summary:     "Log an exercise",
		Tags:        []string{"Exercise"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: creationLimits,
		},
	}, h.AddExercise)

	huma.Register(api, huma.Operation{
		OperationID: "exercise-log",
		Method:      http.MethodGet,
		Path:        "/api/exercise/log",
		Summary:     "Exercise log",
		Description: "Returns the user's exercises sorted by date, filtered by inclusive from/to dates and capped by limit.",
		Tags:        []string{"Exercise"},
	}, h.Log)
}
