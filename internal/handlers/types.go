package handlers

import "time"

// InvalidURLMessage is the error body returned when a URL host does not resolve.
const InvalidURLMessage = "Invalid URL"

// CreateShortURLRequest is the form or JSON body for creating a short URL.
type CreateShortURLRequest struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte `contentType:"application/x-www-form-urlencoded"`
}

type shortURLForm struct {
	URL string `validate:"required"`
}

// ShortURLBody is either the created record or an error message.
type ShortURLBody struct {
	Original  string     `doc:"The URL as submitted"       example:"https://example.com/path" json:"original,omitempty"`
	ShortCode string     `doc:"The short code"             example:"3f2a9c1d"                 json:"shortCode,omitempty"`
	CreatedAt *time.Time `doc:"When the record was stored"                                    json:"createdAt,omitempty"`
	Error     string     `doc:"Set when the URL is invalid" example:"Invalid URL"              json:"error,omitempty"`
}

// CreateShortURLResponse is the response for a short URL creation attempt.
type CreateShortURLResponse struct {
	Body ShortURLBody
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"3f2a9c1d" path:"short"`
}

// RedirectResponse redirects the client to Location.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}
