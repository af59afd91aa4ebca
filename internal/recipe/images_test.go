package recipe

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/starford/cookfind/internal/testutil"
)

func TestTitleImage_None(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "soup.cook", "Boil @water.")
	e, _ := FromPath(p)
	if got := e.TitleImage(); got != "" {
		t.Errorf("title image = %q, want none", got)
	}
}

func TestTitleImage_EachExtension(t *testing.T) {
	for _, ext := range []string{"jpg", "jpeg", "png", "webp"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			p := testutil.WriteFile(t, dir, "soup.cook", "Boil @water.")
			img := testutil.Touch(t, dir, "soup."+ext)
			e, _ := FromPath(p)
			if got := e.TitleImage(); got != img {
				t.Errorf("title image = %q, want %q", got, img)
			}
		})
	}
}

func TestTitleImage_PriorityOrder(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "soup.cook", "Boil @water.")
	testutil.Touch(t, dir, "soup.webp")
	testutil.Touch(t, dir, "soup.png")
	jpg := testutil.Touch(t, dir, "soup.jpg")
	e, _ := FromPath(p)
	if got := e.TitleImage(); got != jpg {
		t.Errorf("title image = %q, want %q", got, jpg)
	}
}

func TestTitleImage_UppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "soup.cook", "Boil @water.")
	img := testutil.Touch(t, dir, "soup.JPG")
	e, _ := FromPath(p)
	if got := e.TitleImage(); got != img {
		t.Errorf("title image = %q, want %q", got, img)
	}
}

func TestTitleImage_IgnoresOtherStems(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "soup.cook", "Boil @water.")
	testutil.Touch(t, dir, "soups.jpg")
	testutil.Touch(t, dir, "soup.gif")
	testutil.Touch(t, dir, "soup.1.jpg")
	e, _ := FromPath(p)
	if got := e.TitleImage(); got != "" {
		t.Errorf("title image = %q, want none", got)
	}
}

func TestStepImages_Conventions(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "stew.cook", "Chop. Fry. Simmer.")
	s1 := testutil.Touch(t, dir, "stew.1.jpg")
	s3 := testutil.Touch(t, dir, "stew.3.PNG")
	sec := testutil.Touch(t, dir, "stew.2.1.webp")
	// Malformed or out-of-range names are skipped.
	testutil.Touch(t, dir, "stew.x.jpg")
	testutil.Touch(t, dir, "stew.0.jpg")
	testutil.Touch(t, dir, "stew.1.2.3.jpg")
	testutil.Touch(t, dir, "stew.-1.jpg")
	testutil.Touch(t, dir, "stew.4.txt")
	testutil.Touch(t, dir, "stewed.1.jpg")

	e, _ := FromPath(p)
	imgs := e.StepImages()
	if imgs.Len() != 3 {
		t.Fatalf("len = %d, want 3: %v", imgs.Len(), imgs)
	}
	if got, ok := imgs.Get(0, 1); !ok || got != s1 {
		t.Errorf("(0,1) = %q", got)
	}
	if got, ok := imgs.Get(0, 3); !ok || got != s3 {
		t.Errorf("(0,3) = %q", got)
	}
	if got, ok := imgs.Get(2, 1); !ok || got != sec {
		t.Errorf("(2,1) = %q", got)
	}
	if _, ok := imgs.Get(0, 2); ok {
		t.Error("(0,2) should be absent")
	}

	want := []StepImage{
		{Section: 0, Step: 1, Path: s1},
		{Section: 0, Step: 3, Path: s3},
		{Section: 2, Step: 1, Path: sec},
	}
	if got := imgs.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
}

func TestStepImages_SlotPriority(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "stew.cook", "Chop.")
	testutil.Touch(t, dir, "stew.1.png")
	jpg := testutil.Touch(t, dir, "stew.1.jpg")
	e, _ := FromPath(p)
	if got, _ := e.StepImages().Get(0, 1); got != jpg {
		t.Errorf("(0,1) = %q, want %q", got, jpg)
	}
}

func TestStepImages_UnreadableDirectoryIsEmpty(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteFile(t, dir, "stew.cook", "Chop.")
	e, _ := FromPath(p)
	if err := os.Remove(p); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Dir(p)); err != nil {
		t.Fatal(err)
	}
	if e.StepImages().Len() != 0 || e.TitleImage() != "" {
		t.Error("expected empty results for a vanished directory")
	}
}
