// Package recipeservice answers recipe queries across a prioritised list of
// recipe directories. It is shared by the HTTP, MCP and CLI surfaces.
package recipeservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/starford/cookfind/internal/apperr"
	"github.com/starford/cookfind/internal/finder"
	"github.com/starford/cookfind/internal/models"
	"github.com/starford/cookfind/internal/recipe"
	"github.com/starford/cookfind/internal/tree"
)

// RecipeDetail is the full representation of a recipe.
type RecipeDetail struct {
	Name       string             `json:"name"`
	Path       string             `json:"path,omitempty"`
	FileName   string             `json:"file_name,omitempty"`
	Kind       models.Kind        `json:"kind"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Checksum   string             `json:"checksum"`
	Tags       []string           `json:"tags"`
	Servings   *int               `json:"servings,omitempty"`
	ImageURL   string             `json:"image_url,omitempty"`
	Metadata   map[string]any     `json:"metadata,omitempty"`
	TitleImage string             `json:"title_image,omitempty"`
	StepImages []recipe.StepImage `json:"step_images"`
}

// RecipeSummary is a lightweight item in a search response.
type RecipeSummary struct {
	Name  string      `json:"name"`
	Path  string      `json:"path"`
	Kind  models.Kind `json:"kind"`
	Title string      `json:"title"`
	Score float64     `json:"score,omitempty"`
}

// TreeNode is the serialisable form of a tree node.
type TreeNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Recipe   string     `json:"recipe,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// Related lists the files a recipe depends on.
type Related struct {
	Recipe string   `json:"recipe"`
	Files  []string `json:"files"`
}

// Service resolves recipes across directories in priority order.
type Service struct {
	dirs []string
}

// NewService creates a service over dirs; earlier directories win lookups.
func NewService(dirs []string) *Service {
	return &Service{dirs: append([]string(nil), dirs...)}
}

// Dirs returns the configured directories in priority order.
func (s *Service) Dirs() []string {
	return append([]string(nil), s.dirs...)
}

// GetRecipe finds name in the configured directories.
func (s *Service) GetRecipe(ctx context.Context, name string) (*RecipeDetail, error) {
	e, err := s.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return buildDetail(e)
}

// FromContent builds a detail view for raw recipe text.
func (s *Service) FromContent(_ context.Context, text, name string) (*RecipeDetail, error) {
	e, err := recipe.FromContent(text, name)
	if err != nil {
		return nil, err
	}
	return buildDetail(e)
}

// Related returns the images and referenced recipes of name, transitively.
func (s *Service) Related(ctx context.Context, name string) (*Related, error) {
	e, err := s.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Related{Recipe: e.Path(), Files: nonNilSlice(e.RelatedFiles())}, nil
}

// Search matches query against every configured directory. Results keep
// directory priority and walk order unless relevance is set, in which case
// they are ordered by score across all directories.
func (s *Service) Search(ctx context.Context, query string, relevance bool) ([]RecipeSummary, error) {
	var hits []finder.Ranked
	for _, dir := range s.dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if relevance {
			ranked, err := finder.Rank(dir, query)
			if err != nil {
				return nil, err
			}
			hits = append(hits, ranked...)
			continue
		}
		entries, err := finder.Search(dir, query)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			hits = append(hits, finder.Ranked{Entry: e})
		}
	}
	if relevance {
		sort.SliceStable(hits, func(i, j int) bool {
			if hits[i].Score != hits[j].Score {
				return hits[i].Score > hits[j].Score
			}
			return strings.ToLower(hits[i].Entry.Name()) < strings.ToLower(hits[j].Entry.Name())
		})
	}

	out := make([]RecipeSummary, len(hits))
	for i, h := range hits {
		out[i] = RecipeSummary{
			Name:  h.Entry.Name(),
			Path:  h.Entry.Path(),
			Kind:  h.Entry.Kind(),
			Title: h.Entry.Title(),
			Score: h.Score,
		}
	}
	slog.Debug("search", slog.String("query", query), slog.Int("results", len(out)))
	return out, nil
}

// Trees builds one tree per configured directory. Directories that do not
// exist are skipped; any other build failure is returned.
func (s *Service) Trees(ctx context.Context) ([]TreeNode, error) {
	out := []TreeNode{}
	for _, dir := range s.dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			slog.Warn("recipe directory missing", slog.String("dir", dir))
			continue
		}
		root, err := tree.Build(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, convertNode(root))
	}
	return out, nil
}

func (s *Service) lookup(ctx context.Context, name string) (*recipe.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, found, err := finder.GetRecipe(s.dirs, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.New(apperr.ErrNotFound, name, nil)
	}
	return e, nil
}

func buildDetail(e *recipe.Entry) (*RecipeDetail, error) {
	content, err := e.Content()
	if err != nil {
		return nil, err
	}
	md, err := e.Metadata()
	if err != nil {
		return nil, err
	}
	d := &RecipeDetail{
		Name:       e.Name(),
		Path:       e.Path(),
		FileName:   e.FileName(),
		Kind:       e.Kind(),
		Title:      e.Title(),
		Content:    content,
		Checksum:   sha256sum([]byte(content)),
		Tags:       nonNilSlice(md.Tags()),
		ImageURL:   md.ImageURL(),
		Metadata:   md.Raw,
		TitleImage: e.TitleImage(),
		StepImages: nonNilSlice(e.StepImages().Sorted()),
	}
	if n, ok := md.Servings(); ok {
		d.Servings = &n
	}
	return d, nil
}

func convertNode(n *tree.Node) TreeNode {
	out := TreeNode{Name: n.Name, Path: n.Path}
	if n.Recipe != nil {
		out.Recipe = n.Recipe.Path()
	}
	for _, c := range n.SortedChildren() {
		out.Children = append(out.Children, convertNode(c))
	}
	return out
}

func sha256sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
