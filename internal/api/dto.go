package api

import "github.com/starford/cookfind/internal/recipeservice"

// ParseRecipeRequest is the request body for parsing raw recipe text.
type ParseRecipeRequest struct {
	Name    string `json:"name" example:"pancakes"`
	Content string `json:"content" example:"Mix @flour{200%g}" validate:"required"`
}

// RecipeDetail is the full recipe response type (aliased from the domain layer).
type RecipeDetail = recipeservice.RecipeDetail

// RecipeSummary is a search hit (aliased from the domain layer).
type RecipeSummary = recipeservice.RecipeSummary

// TreeNode is one node of a recipe tree (aliased from the domain layer).
type TreeNode = recipeservice.TreeNode

// RelatedResponse lists the files a recipe depends on.
type RelatedResponse = recipeservice.Related

// SearchResponse wraps search hits.
type SearchResponse struct {
	Results []RecipeSummary `json:"results" validate:"required"`
}

// TreeResponse wraps one tree per recipe directory, in priority order.
type TreeResponse struct {
	Trees []TreeNode `json:"trees" validate:"required"`
}
