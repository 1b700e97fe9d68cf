package handlers

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
)

// NewAPI creates the huma API on router. Response bodies carry no $schema
// link so clients see exactly the documented JSON.
func NewAPI(router chi.Router, title, version string) huma.API {
	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil

	return humachi.New(router, config)
}
