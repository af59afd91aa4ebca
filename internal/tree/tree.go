// Package tree mirrors a recipe directory into a hierarchy of named nodes.
package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/starford/cookfind/internal/apperr"
	"github.com/starford/cookfind/internal/models"
	"github.com/starford/cookfind/internal/recipe"
)

// Node is one directory or recipe in the tree. A directory and a recipe
// sharing a name in the same parent share a node.
type Node struct {
	Name     string
	Path     string
	Recipe   *recipe.Entry
	Children map[string]*Node
}

func newNode(name, path string) *Node {
	return &Node{Name: name, Path: path, Children: make(map[string]*Node)}
}

// Build walks baseDir and returns the root node. Any unreadable directory
// fails the whole build with an apperr.ErrTree carrying every walk error.
func Build(baseDir string) (*Node, error) {
	base := filepath.Clean(baseDir)
	info, err := os.Stat(base)
	if err != nil {
		return nil, apperr.New(apperr.ErrTree, base, err)
	}
	if !info.IsDir() {
		return nil, apperr.New(apperr.ErrTree, base, fmt.Errorf("not a directory"))
	}

	name := filepath.Base(base)
	if name == "." || name == string(filepath.Separator) {
		name = "./"
	}
	// WalkDir does not descend into a symlinked root, so walk the resolved
	// directory and report paths under base.
	walkRoot, err := filepath.EvalSymlinks(base)
	if err != nil {
		return nil, apperr.New(apperr.ErrTree, base, err)
	}

	root := newNode(name, base)
	dirs := map[string]*Node{base: root}

	var errs []error
	walkErr := filepath.WalkDir(walkRoot, func(walked string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		rel, err := filepath.Rel(walkRoot, walked)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if rel == "." {
			return nil
		}
		p := filepath.Join(base, rel)
		parent, ok := dirs[filepath.Dir(p)]
		if !ok {
			return nil
		}

		if d.IsDir() {
			child := parent.Children[d.Name()]
			if child == nil {
				child = newNode(d.Name(), p)
				parent.Children[d.Name()] = child
			} else {
				child.Path = p
			}
			dirs[p] = child
			return nil
		}

		if _, ok := models.KindFromPath(p); !ok {
			return nil
		}
		entry, err := recipe.FromPath(p)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		attach(parent, entry)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	if len(errs) > 0 {
		return nil, apperr.New(apperr.ErrTree, base, errors.Join(errs...))
	}
	return root, nil
}

// attach adds entry under parent, keyed by its stem. A .cook file wins over
// a .menu file with the same stem.
func attach(parent *Node, entry *recipe.Entry) {
	name := entry.Name()
	child := parent.Children[name]
	if child == nil {
		child = newNode(name, entry.Path())
		parent.Children[name] = child
	}
	if child.Recipe == nil || (child.Recipe.IsMenu() && !entry.IsMenu()) {
		child.Recipe = entry
	}
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	return n.Children[name]
}

// SortedChildren returns the children ordered by name.
func (n *Node) SortedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup follows segments from n and returns the node reached, or nil if
// any segment is missing.
func (n *Node) Lookup(segments ...string) *Node {
	cur := n
	for _, s := range segments {
		if cur = cur.Children[s]; cur == nil {
			return nil
		}
	}
	return cur
}

// RecipeAt returns the recipe at the node reached by segments, or nil.
func (n *Node) RecipeAt(segments ...string) *recipe.Entry {
	if node := n.Lookup(segments...); node != nil {
		return node.Recipe
	}
	return nil
}

// Nodes returns n and all descendants in pre-order, siblings sorted by name.
func (n *Node) Nodes() []*Node {
	var out []*Node
	n.visit(func(node *Node) { out = append(out, node) })
	return out
}

// Recipes returns every recipe in the tree in the same order as Nodes.
func (n *Node) Recipes() []*recipe.Entry {
	var out []*recipe.Entry
	n.visit(func(node *Node) {
		if node.Recipe != nil {
			out = append(out, node.Recipe)
		}
	})
	return out
}

func (n *Node) visit(fn func(*Node)) {
	fn(n)
	for _, c := range n.SortedChildren() {
		c.visit(fn)
	}
}
