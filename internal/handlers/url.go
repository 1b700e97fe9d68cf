package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/isacvale/fcc-timestamp/internal/analytics"
	"github.com/isacvale/fcc-timestamp/internal/shortener"
	"go.uber.org/zap"
)

// CreationPagePath serves the short URL creation form.
const CreationPagePath = "/api/shorturl/new"

// NotFoundMode selects how unknown short codes are answered.
type NotFoundMode string

const (
	// NotFoundRedirect sends the client back to the creation page.
	NotFoundRedirect NotFoundMode = "redirect"
	// NotFoundStatus answers with a 404 problem.
	NotFoundStatus NotFoundMode = "status"
)

// ShortURLService is the behavior URLHandler needs from the shortener.
type ShortURLService interface {
	Create(ctx context.Context, rawURL string) (*shortener.ShortURL, error)
	Resolve(ctx context.Context, code shortener.Code) (string, error)
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service    ShortURLService
	notFound   NotFoundMode
	publishers *analytics.Publishers
	logger     *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service ShortURLService,
	notFound NotFoundMode,
	publishers *analytics.Publishers,
	logger *zap.Logger,
) *URLHandler {
	if notFound == "" {
		notFound = NotFoundRedirect
	}

	return &URLHandler{
		service:    service,
		notFound:   notFound,
		publishers: publishers,
		logger:     logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	values, err := bodyValues(req.ContentType, req.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("malformed request body", err)
	}

	form := shortURLForm{URL: values.Get("url")}
	if err := validate.Struct(form); err != nil {
		return invalidURLResponse(), nil
	}

	shortURL, err := h.service.Create(ctx, form.URL)
	if err != nil {
		if errors.Is(err, shortener.ErrInvalidURL) {
			return invalidURLResponse(), nil
		}

		h.logger.Error("failed to create short url", zap.String("url", form.URL), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save url")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLCreatedEvent{
		Code:      string(shortURL.Code),
		Original:  shortURL.Original,
		CreatedAt: shortURL.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishers.URLCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish analytics event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	createdAt := shortURL.CreatedAt

	resp := &CreateShortURLResponse{}
	resp.Body.Original = shortURL.Original
	resp.Body.ShortCode = string(shortURL.Code)
	resp.Body.CreatedAt = &createdAt

	return resp, nil
}

func invalidURLResponse() *CreateShortURLResponse {
	resp := &CreateShortURLResponse{}
	resp.Body.Error = InvalidURLMessage

	return resp
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	target, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if !errors.Is(err, shortener.ErrNotFound) {
			h.logger.Error("failed to resolve short url", zap.String("code", req.Code), zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to get url")
		}

		if h.notFound == NotFoundStatus {
			return nil, huma.Error404NotFound("short url not found")
		}

		return &RedirectResponse{Status: http.StatusFound, Location: CreationPagePath}, nil
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLAccessedEvent{
		Code:       req.Code,
		Target:     target,
		AccessedAt: time.Now().UTC(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err = h.publishers.URLAccessed(ctx, event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	return &RedirectResponse{Status: http.StatusFound, Location: target}, nil
}
