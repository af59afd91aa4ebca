// Package storage defines the read-only recipe directory abstraction.
package storage

import "github.com/starford/cookfind/internal/models"

// Provider is the interface for recipe directory access.
type Provider interface {
	// Root returns the absolute base directory.
	Root() string
	// Resolve maps a path relative to the root onto an absolute path,
	// rejecting paths that escape the root.
	Resolve(rel string) (string, error)
	// List returns every recipe file under dir (relative to root) in
	// lexical walk order.
	List(dir string) ([]models.RecipeFile, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
}
