// Package recipe models a single recipe backed by a file or by raw text,
// and resolves the images and recipes it depends on.
package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/starford/cookfind/internal/apperr"
	"github.com/starford/cookfind/internal/models"
	"github.com/starford/cookfind/internal/parser"
)

// SourceKind tags the variant held by a Source.
type SourceKind int

const (
	SourcePath SourceKind = iota
	SourceContent
)

// Source is either a filesystem path or in-memory text with an optional name.
type Source struct {
	Kind SourceKind
	Path string // SourcePath only
	Text string // SourceContent only
	Name string // SourceContent only
}

// Entry is a recipe backed by a file or by raw text. It is immutable apart
// from its memoized metadata, which is safe for concurrent first access.
type Entry struct {
	source Source
	kind   models.Kind

	// readFile is swapped in tests to count reads.
	readFile func(string) ([]byte, error)

	metadata func() (*Metadata, error)
}

// FromPath returns an entry bound to the recipe file at path. Only the
// extension and the file's existence are checked; content is read lazily.
func FromPath(path string) (*Entry, error) {
	path = filepath.Clean(path)
	kind, ok := models.KindFromPath(path)
	if !ok {
		return nil, apperr.InvalidPath(path, fmt.Errorf("unrecognised recipe extension %q", filepath.Ext(path)))
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperr.IO(path, err)
	}
	if info.IsDir() {
		return nil, apperr.InvalidPath(path, fmt.Errorf("is a directory"))
	}

	e := &Entry{
		source:   Source{Kind: SourcePath, Path: path},
		kind:     kind,
		readFile: os.ReadFile,
	}
	e.metadata = sync.OnceValues(e.loadMetadata)
	return e, nil
}

// FromContent returns an entry for raw recipe text. The front-matter is
// parsed immediately; malformed front-matter fails with apperr.ErrParse.
// A name ending in ".menu" marks the entry as a menu.
func FromContent(text, name string) (*Entry, error) {
	res, err := parser.Parse([]byte(text))
	if err != nil {
		return nil, apperr.Parse(name, err)
	}
	kind := models.KindRecipe
	if k, ok := models.KindFromPath(name); ok {
		kind = k
	}
	e := &Entry{
		source: Source{Kind: SourceContent, Text: text, Name: name},
		kind:   kind,
	}
	md := &Metadata{Raw: res.Frontmatter}
	e.metadata = func() (*Metadata, error) { return md, nil }
	return e, nil
}

// Source returns a copy of the entry's source.
func (e *Entry) Source() Source { return e.source }

// Kind reports whether the entry is a recipe or a menu.
func (e *Entry) Kind() models.Kind { return e.kind }

// IsMenu reports whether the entry is a menu.
func (e *Entry) IsMenu() bool { return e.kind == models.KindMenu }

// Path returns the backing file path, or "" for content entries.
func (e *Entry) Path() string { return e.source.Path }

// Name returns the file stem for file entries, or the supplied name
// (without a recipe extension) for content entries.
func (e *Entry) Name() string {
	if e.source.Kind == SourcePath {
		return models.Stem(e.source.Path)
	}
	if _, ok := models.KindFromPath(e.source.Name); ok {
		return models.Stem(e.source.Name)
	}
	return e.source.Name
}

// FileName returns the base name including extension, or "" for content entries.
func (e *Entry) FileName() string {
	if e.source.Kind != SourcePath {
		return ""
	}
	return filepath.Base(e.source.Path)
}

// Content returns the raw recipe text. File entries read the file on every call.
func (e *Entry) Content() (string, error) {
	if e.source.Kind == SourceContent {
		return e.source.Text, nil
	}
	data, err := e.readFile(e.source.Path)
	if err != nil {
		return "", apperr.IO(e.source.Path, err)
	}
	return string(data), nil
}

// Metadata returns the parsed front-matter, computed once per entry.
func (e *Entry) Metadata() (*Metadata, error) {
	return e.metadata()
}

func (e *Entry) loadMetadata() (*Metadata, error) {
	text, err := e.Content()
	if err != nil {
		return nil, err
	}
	fm, _, err := parser.SplitFrontmatter(text)
	if err != nil {
		return nil, apperr.Parse(e.source.Path, err)
	}
	return &Metadata{Raw: fm}, nil
}

// Title returns the metadata title, falling back to Name.
func (e *Entry) Title() string {
	if md, err := e.Metadata(); err == nil {
		if t := md.Title(); t != "" {
			return t
		}
	}
	return e.Name()
}

// Tags returns the metadata tags. Unreadable metadata yields no tags.
func (e *Entry) Tags() []string {
	md, err := e.Metadata()
	if err != nil {
		return nil
	}
	return md.Tags()
}

// TitleImage returns the image sharing the recipe's stem, or "".
// Content entries never have one.
func (e *Entry) TitleImage() string {
	if e.source.Kind != SourcePath {
		return ""
	}
	return findTitleImage(e.source.Path)
}

// StepImages returns per-step images found next to the recipe file.
// Content entries always return an empty collection.
func (e *Entry) StepImages() StepImages {
	if e.source.Kind != SourcePath {
		return StepImages{}
	}
	return findStepImages(e.source.Path)
}
