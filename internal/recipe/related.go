package recipe

import (
	"os"
	"path/filepath"

	"github.com/starford/cookfind/internal/models"
	"github.com/starford/cookfind/internal/parser"
)

// RelatedFiles returns the images and referenced recipe files this recipe
// transitively depends on, in discovery order and without duplicates.
// The recipe's own file is never included. Missing or unreadable files are
// skipped; whatever was collected before a failure is kept.
func (e *Entry) RelatedFiles() []string {
	if e.source.Kind != SourcePath {
		return nil
	}
	origin := canonicalPath(e.source.Path)
	r := &resolver{
		readFile: e.readFile,
		visited:  map[string]struct{}{origin: {}},
		emitted:  map[string]struct{}{origin: {}},
	}
	r.expand(e.source.Path)
	return r.out
}

type resolver struct {
	readFile func(string) ([]byte, error)
	visited  map[string]struct{} // recipes already expanded, canonical
	emitted  map[string]struct{} // paths already in out, canonical
	out      []string
}

func (r *resolver) emit(path string) {
	key := canonicalPath(path)
	if _, ok := r.emitted[key]; ok {
		return
	}
	r.emitted[key] = struct{}{}
	r.out = append(r.out, path)
}

// expand appends the images of the recipe at path, then each referenced
// recipe followed by its own expansion.
func (r *resolver) expand(path string) {
	if img := findTitleImage(path); img != "" {
		r.emit(img)
	}
	for _, si := range findStepImages(path).Sorted() {
		r.emit(si.Path)
	}

	data, err := r.readFile(path)
	if err != nil {
		return
	}

	dir := filepath.Dir(path)
	for _, ref := range parser.ExtractReferences(string(data)) {
		target := filepath.Join(dir, filepath.FromSlash(ref))
		if filepath.Ext(target) == "" {
			target += models.RecipeExt
		}
		info, err := os.Stat(target)
		if err != nil || info.IsDir() {
			continue
		}
		key := canonicalPath(target)
		if _, ok := r.visited[key]; ok {
			continue
		}
		r.visited[key] = struct{}{}
		r.emit(target)
		r.expand(target)
	}
}

// canonicalPath resolves symlinks and makes path absolute, falling back to
// a cleaned path when resolution fails.
func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
