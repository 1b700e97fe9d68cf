package handlers

import (
	"embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var static embed.FS

// RegisterPages mounts the HTML form pages on the router.
func RegisterPages(router chi.Router) {
	router.Get("/", page("static/home.html"))
	router.Get(CreationPagePath, page("static/shorturl.html"))
	router.Get("/api/fileanalyse", page("static/fileanalyse.html"))
}

func page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, name)
	}
}
