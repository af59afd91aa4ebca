package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/cookfind/internal/apperr"
	"github.com/starford/cookfind/internal/models"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to the base directory
	walk string // root with symlinks resolved; walked by List
}

var _ Provider = (*FS)(nil)

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, apperr.IO(root, fmt.Errorf("resolve root: %w", err))
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, apperr.IO(abs, err)
	}
	if !info.IsDir() {
		return nil, apperr.InvalidPath(abs, fmt.Errorf("root is not a directory"))
	}
	// WalkDir does not descend into a symlinked root.
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, apperr.IO(abs, err)
	}
	return &FS{root: abs, walk: resolved}, nil
}

// Root returns the absolute base directory.
func (f *FS) Root() string { return f.root }

// Resolve resolves a relative path against the root and rejects any result
// that escapes it.
func (f *FS) Resolve(rel string) (string, error) {
	if rel == "" || rel == "." {
		return f.root, nil
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) {
		return "", apperr.InvalidPath(rel, fmt.Errorf("absolute paths not allowed"))
	}
	abs := filepath.Join(f.root, cleaned)
	if !within(f.root, abs) {
		return "", apperr.InvalidPath(rel, fmt.Errorf("path escapes base directory"))
	}
	return abs, nil
}

// within reports whether path is root or lies beneath it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// List walks dir (relative to root) and returns every .cook and .menu file.
func (f *FS) List(dir string) ([]models.RecipeFile, error) {
	if _, err := f.Resolve(dir); err != nil {
		return nil, err
	}
	base := filepath.Join(f.walk, filepath.FromSlash(dir))
	var out []models.RecipeFile
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return apperr.IO(p, walkErr)
		}
		if d.IsDir() {
			return nil
		}
		kind, ok := models.KindFromPath(p)
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return apperr.IO(p, err)
		}
		rel, _ := filepath.Rel(f.walk, p)
		out = append(out, models.RecipeFile{
			Path:      filepath.ToSlash(rel),
			Name:      models.Stem(p),
			Kind:      kind,
			Size:      info.Size(),
			UpdatedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	return out, nil
}

// Read returns the raw bytes of a file under the root.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, apperr.IO(path, err)
	}
	return data, nil
}
