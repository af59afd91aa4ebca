package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/cookfind/internal/recipeservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *recipeservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *recipeservice.Service) *Handler {
	return &Handler{svc: svc}
}

// recipeName extracts the recipe name from the wildcard part of the URL.
// Supports encoded slashes (e.g. breakfast%2Fpancakes).
func recipeName(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// GetRecipe handles GET /api/recipes/*.
//
//	@Summary		Get a recipe by name from the first directory that has it
//	@Tags			recipes
//	@Produce		json
//	@Param			name	path		string	true	"Recipe name, optionally with sub-directories or extension"
//	@Success		200		{object}	RecipeDetail
//	@Success		304		"Not modified"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes/{name} [get]
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	name := recipeName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	recipe, err := h.svc.GetRecipe(r.Context(), name)
	if err != nil {
		writeError(w, "get recipe", err)
		return
	}
	etag := `"` + recipe.Checksum + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// ParseRecipe handles POST /api/recipes/parse.
//
//	@Summary		Build a recipe from raw text without touching the filesystem
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ParseRecipeRequest	true	"Recipe text"
//	@Success		200		{object}	RecipeDetail
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recipes/parse [post]
func (h *Handler) ParseRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req ParseRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	recipe, err := h.svc.FromContent(r.Context(), req.Content, req.Name)
	if err != nil {
		writeError(w, "parse recipe", err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// Related handles GET /api/related/*.
//
//	@Summary		List images and referenced recipes a recipe depends on
//	@Tags			recipes
//	@Produce		json
//	@Param			name	path		string	true	"Recipe name"
//	@Success		200		{object}	RelatedResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/related/{name} [get]
func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	name := recipeName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	rel, err := h.svc.Related(r.Context(), name)
	if err != nil {
		writeError(w, "related files", err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

// Search handles GET /api/search.
//
//	@Summary		Search recipe names and content
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			sort	query		string	false	"Result order"	Enums(relevance)
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("q") {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	var relevance bool
	switch q.Get("sort") {
	case "":
	case "relevance":
		relevance = true
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("sort must be 'relevance' or omitted"))
		return
	}
	results, err := h.svc.Search(r.Context(), q.Get("q"), relevance)
	if err != nil {
		writeError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Tree handles GET /api/tree.
//
//	@Summary		Directory tree of every recipe directory
//	@Tags			tree
//	@Produce		json
//	@Success		200	{object}	TreeResponse
//	@Security		BearerAuth
//	@Router			/tree [get]
func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	trees, err := h.svc.Trees(r.Context())
	if err != nil {
		writeError(w, "tree", err)
		return
	}
	writeJSON(w, http.StatusOK, TreeResponse{Trees: trees})
}
