// Package finder locates recipes by name across prioritised base
// directories and searches recipe names and content.
package finder

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/starford/cookfind/internal/apperr"
	"github.com/starford/cookfind/internal/models"
	"github.com/starford/cookfind/internal/recipe"
	"github.com/starford/cookfind/internal/storage"
)

// GetRecipe looks for name in each of baseDirs in order and returns the
// first match. Later directories are not consulted once one matches.
//
// Matching is case-insensitive. A name without a recipe extension matches
// any .cook or .menu file with that stem, preferring an exact-case match and
// then .cook over .menu. A name with an extension matches that file name
// only. Names may contain sub-directories but may not leave the base
// directory. Missing base directories are skipped; found is false when no
// directory has a match.
func GetRecipe(baseDirs []string, name string) (entry *recipe.Entry, found bool, err error) {
	for _, dir := range baseDirs {
		p, err := lookup(dir, name)
		if err != nil {
			return nil, false, err
		}
		if p == "" {
			continue
		}
		e, err := recipe.FromPath(p)
		if err != nil {
			return nil, false, err
		}
		return e, true, nil
	}
	return nil, false, nil
}

// lookup returns the path of the best match for name directly in the
// directory it names under baseDir, or "" if there is none.
func lookup(baseDir, name string) (string, error) {
	store, err := storage.NewFS(baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	rel := filepath.FromSlash(name)
	dir, err := store.Resolve(filepath.Dir(rel))
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", apperr.IO(dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", apperr.IO(dir, err)
	}
	if best := bestMatch(entries, filepath.Base(rel)); best != "" {
		return filepath.Join(dir, best), nil
	}
	return "", nil
}

func bestMatch(entries []fs.DirEntry, want string) string {
	_, withExt := models.KindFromPath(want)
	fold := cases.Fold()
	target := fold.String(want)

	best, bestRank := "", math.MaxInt
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		kind, ok := models.KindFromPath(name)
		if !ok {
			continue
		}
		cand := name
		if !withExt {
			cand = models.Stem(name)
		}
		if fold.String(cand) != target {
			continue
		}
		rank := 0
		if cand != want {
			rank += 2
		}
		if kind == models.KindMenu {
			rank++
		}
		if rank < bestRank {
			best, bestRank = name, rank
		}
	}
	return best
}

// Search walks baseDir and returns every recipe whose stem contains query
// or whose content contains any whitespace-separated term of query, both
// compared case-insensitively. Results follow lexical walk order. A missing
// base directory yields no results.
func Search(baseDir, query string) ([]*recipe.Entry, error) {
	hits, err := scan(baseDir, query)
	if err != nil {
		return nil, err
	}
	out := make([]*recipe.Entry, len(hits))
	for i, h := range hits {
		out[i] = h.Entry
	}
	return out, nil
}

// Ranked is a search hit with its relevance score.
type Ranked struct {
	Entry *recipe.Entry
	Score float64
}

// Rank runs Search and orders hits by relevance: an exact stem match scores
// 20, a partial stem match 10, and content matches add 1 plus 0.1 per
// occurrence (capped at 5). Ties are ordered by lower-cased stem.
func Rank(baseDir, query string) ([]Ranked, error) {
	hits, err := scan(baseDir, query)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return strings.ToLower(hits[i].Entry.Name()) < strings.ToLower(hits[j].Entry.Name())
	})
	return hits, nil
}

func scan(baseDir, query string) ([]Ranked, error) {
	store, err := storage.NewFS(baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	files, err := store.List("")
	if err != nil {
		return nil, err
	}

	m := newMatcher(query)
	var out []Ranked
	for _, f := range files {
		score := m.nameScore(f.Name)
		// Unreadable content only disables the content test.
		if data, err := store.Read(f.Path); err == nil {
			if n := m.contentMatches(string(data)); n > 0 {
				score += 1 + math.Min(0.1*float64(n), 5)
			}
		}
		if score == 0 {
			continue
		}
		e, err := recipe.FromPath(filepath.Join(store.Root(), filepath.FromSlash(f.Path)))
		if err != nil {
			return nil, err
		}
		out = append(out, Ranked{Entry: e, Score: score})
	}
	return out, nil
}

type matcher struct {
	fold  cases.Caser
	query string
	terms []string
}

func newMatcher(query string) *matcher {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	return &matcher{fold: fold, query: q, terms: strings.Fields(q)}
}

func (m *matcher) nameScore(stem string) float64 {
	s := m.fold.String(stem)
	switch {
	case s == m.query:
		return 20
	case strings.Contains(s, m.query):
		return 10
	}
	return 0
}

func (m *matcher) contentMatches(text string) int {
	t := m.fold.String(text)
	n := 0
	for _, term := range m.terms {
		n += strings.Count(t, term)
	}
	return n
}
