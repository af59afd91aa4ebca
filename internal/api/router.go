package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/cookfind/internal/recipeservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *recipeservice.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Post("/recipes/parse", h.ParseRecipe)
	r.Get("/recipes/*", h.GetRecipe)
	r.Get("/related/*", h.Related)
	r.Get("/search", h.Search)
	r.Get("/tree", h.Tree)

	return r
}
