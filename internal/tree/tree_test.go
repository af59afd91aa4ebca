package tree

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/starford/cookfind/internal/apperr"
	"github.com/starford/cookfind/internal/recipe"
	"github.com/starford/cookfind/internal/testutil"
)

func sampleDir(t *testing.T) string {
	t.Helper()
	return testutil.RecipeDir(t, map[string]string{
		"pancakes.cook":               "Mix @flour.",
		"pancakes.jpg":                "",
		"breakfast/omelette.cook":     "Beat @eggs{3}.",
		"breakfast/eggs/poached.cook": "Poach @eggs.",
		"soups.cook":                  "Index of soups.",
		"soups/tomato.cook":           "Chop @tomatoes.",
		"menus/weekly.menu":           "Mon: @../pancakes{}",
		"empty/readme.txt":            "nothing here",
	})
}

func keys(n *Node) []string {
	var out []string
	for k := range n.Children {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestBuild_Structure(t *testing.T) {
	dir := sampleDir(t)
	root, err := Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if root.Name != filepath.Base(dir) || root.Path != dir {
		t.Errorf("root = %q %q", root.Name, root.Path)
	}
	want := []string{"breakfast", "empty", "menus", "pancakes", "soups"}
	if got := keys(root); !reflect.DeepEqual(got, want) {
		t.Errorf("root children = %v, want %v", got, want)
	}
	if got := keys(root.Child("breakfast")); !reflect.DeepEqual(got, []string{"eggs", "omelette"}) {
		t.Errorf("breakfast children = %v", got)
	}
	if len(root.Child("empty").Children) != 0 || root.Child("empty").Recipe != nil {
		t.Error("empty dir should have no children and no recipe")
	}
	if root.Child("nope") != nil {
		t.Error("missing child should be nil")
	}
}

func TestBuild_DirectoryAndRecipeShareNode(t *testing.T) {
	root, err := Build(sampleDir(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	soups := root.Child("soups")
	if soups.Recipe == nil || soups.Recipe.FileName() != "soups.cook" {
		t.Fatalf("soups node should hold soups.cook, got %+v", soups.Recipe)
	}
	if !strings.HasSuffix(soups.Path, "soups") {
		t.Errorf("soups path = %q, want directory path", soups.Path)
	}
	if soups.Child("tomato") == nil {
		t.Error("soups directory children missing")
	}
}

func TestBuild_RecipeBeatsMenuWithSameStem(t *testing.T) {
	dir := testutil.RecipeDir(t, map[string]string{"dinner.cook": "c", "dinner.menu": "m"})
	root, err := Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if r := root.RecipeAt("dinner"); r == nil || r.IsMenu() {
		t.Errorf("dinner = %+v, want the .cook recipe", r)
	}
}

func TestRecipeAt(t *testing.T) {
	root, err := Build(sampleDir(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if r := root.RecipeAt("breakfast", "eggs", "poached"); r == nil || r.Name() != "poached" {
		t.Errorf("poached = %+v", r)
	}
	if r := root.RecipeAt("breakfast", "missing"); r != nil {
		t.Errorf("missing = %+v, want nil", r)
	}
	if r := root.RecipeAt("breakfast"); r != nil {
		t.Errorf("directory without recipe = %+v, want nil", r)
	}
}

func TestRoundTrip_LookupMatchesDirectConstruction(t *testing.T) {
	dir := sampleDir(t)
	root, err := Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	recipes := root.Recipes()
	if len(recipes) != 6 {
		t.Fatalf("recipes = %d, want 6", len(recipes))
	}
	for _, r := range recipes {
		rel, _ := filepath.Rel(dir, r.Path())
		segs := strings.Split(filepath.ToSlash(rel), "/")
		segs[len(segs)-1] = r.Name()

		got := root.RecipeAt(segs...)
		if got != r {
			t.Errorf("RecipeAt(%v) returned a different entry", segs)
			continue
		}
		direct, err := recipe.FromPath(filepath.Join(dir, rel))
		if err != nil {
			t.Fatalf("FromPath: %v", err)
		}
		if direct.Path() != got.Path() {
			t.Errorf("path %q != %q", direct.Path(), got.Path())
		}
		a, _ := direct.Content()
		b, _ := got.Content()
		if a != b {
			t.Errorf("content mismatch for %s", rel)
		}
	}
}

func TestNodes_PreOrderSorted(t *testing.T) {
	dir := testutil.RecipeDir(t, map[string]string{"b.cook": "", "a/c.cook": ""})
	root, err := Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var names []string
	for _, n := range root.Nodes() {
		names = append(names, n.Name)
	}
	want := []string{filepath.Base(dir), "a", "c", "b"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("nodes = %v, want %v", names, want)
	}
}

func TestBuild_MissingAndNotDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := Build(filepath.Join(dir, "missing")); !errors.Is(err, apperr.ErrTree) {
		t.Errorf("missing dir: err = %v, want ErrTree", err)
	}
	f := testutil.Touch(t, dir, "file.cook")
	if _, err := Build(f); !errors.Is(err, apperr.ErrTree) {
		t.Errorf("file root: err = %v, want ErrTree", err)
	}
}

func TestBuild_UnreadableSubdirFailsWholeBuild(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := testutil.RecipeDir(t, map[string]string{"ok.cook": "", "locked/secret.cook": ""})
	locked := filepath.Join(dir, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	root, err := Build(dir)
	if !errors.Is(err, apperr.ErrTree) {
		t.Fatalf("err = %v, want ErrTree", err)
	}
	if root != nil {
		t.Error("a failed build must not return a partial tree")
	}
}

func TestBuild_SymlinkedBase(t *testing.T) {
	target := testutil.RecipeDir(t, map[string]string{
		"pancakes.cook":     "Mix @flour.",
		"soups/tomato.cook": "Chop @tomatoes.",
		"menus/weekly.menu": "Mon: @../pancakes{}",
	})
	link := filepath.Join(t.TempDir(), "recipes")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	root, err := Build(link)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := keys(root), []string{"menus", "pancakes", "soups"}; !reflect.DeepEqual(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
	if len(root.Recipes()) != 3 {
		t.Errorf("recipes = %d, want 3", len(root.Recipes()))
	}
	tomato := root.RecipeAt("soups", "tomato")
	if tomato == nil || tomato.Path() != filepath.Join(link, "soups", "tomato.cook") {
		t.Errorf("tomato = %v, want path under the link", tomato)
	}
	if soups := root.Child("soups"); soups == nil || soups.Path != filepath.Join(link, "soups") {
		t.Errorf("soups node = %+v", soups)
	}
}
