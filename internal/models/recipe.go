// Package models defines the domain types for cookfind.
package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Kind distinguishes recipe documents from menus.
type Kind string

const (
	KindRecipe Kind = "recipe"
	KindMenu   Kind = "menu"
)

// Recipe file extensions. Lookups prefer RecipeExt.
const (
	RecipeExt = ".cook"
	MenuExt   = ".menu"
)

// KindFromPath reports the kind of the file at path based on its extension.
// The second result is false when the extension is not a recipe extension.
func KindFromPath(path string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case RecipeExt:
		return KindRecipe, true
	case MenuExt:
		return KindMenu, true
	}
	return "", false
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RecipeFile is a lightweight listing record for a recipe file on disk.
type RecipeFile struct {
	Path      string    `json:"path"` // relative to the listing root
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}
