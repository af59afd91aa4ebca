package recipe

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/starford/cookfind/internal/models"
)

// ImageExtensions lists accepted image extensions in priority order. When a
// recipe has several candidate images for the same slot the earliest wins.
var ImageExtensions = []string{"jpg", "jpeg", "png", "webp"}

// imagePriority returns the index of ext (with or without the leading dot)
// in ImageExtensions, compared case-insensitively, or -1.
func imagePriority(ext string) int {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for i, e := range ImageExtensions {
		if e == ext {
			return i
		}
	}
	return -1
}

// StepImages maps section index to step number to image path. Section 0
// holds images of recipes without explicit sections. Steps are 1-based.
type StepImages map[int]map[int]string

// StepImage is one entry of a flattened StepImages.
type StepImage struct {
	Section int    `json:"section"`
	Step    int    `json:"step"`
	Path    string `json:"path"`
}

// Get returns the image for the given section and step.
func (s StepImages) Get(section, step int) (string, bool) {
	p, ok := s[section][step]
	return p, ok
}

// Len returns the total number of step images.
func (s StepImages) Len() int {
	n := 0
	for _, steps := range s {
		n += len(steps)
	}
	return n
}

// Sorted flattens the collection ordered by section, then step.
func (s StepImages) Sorted() []StepImage {
	out := make([]StepImage, 0, s.Len())
	for section, steps := range s {
		for step, p := range steps {
			out = append(out, StepImage{Section: section, Step: step, Path: p})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].Step < out[j].Step
	})
	return out
}

// findTitleImage looks for "{stem}.{ext}" next to the recipe at path.
// An unreadable directory yields no image.
func findTitleImage(path string) string {
	dir := filepath.Dir(path)
	stem := models.Stem(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	best, bestPrio := "", len(ImageExtensions)
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		ext := filepath.Ext(name)
		if strings.TrimSuffix(name, ext) != stem {
			continue
		}
		// ReadDir is name-sorted, so the first hit wins among equal priorities.
		if p := imagePriority(ext); p >= 0 && p < bestPrio {
			best, bestPrio = filepath.Join(dir, name), p
		}
	}
	return best
}

// findStepImages collects "{stem}.{step}.{ext}" and
// "{stem}.{section}.{step}.{ext}" files next to the recipe at path.
// Names with malformed numeric segments are skipped.
func findStepImages(path string) StepImages {
	dir := filepath.Dir(path)
	prefix := models.Stem(path) + "."
	entries, err := os.ReadDir(dir)
	if err != nil {
		return StepImages{}
	}

	type slot struct{ section, step int }
	prio := make(map[slot]int)
	out := StepImages{}
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		ext := filepath.Ext(name)
		p := imagePriority(ext)
		if p < 0 || !strings.HasPrefix(name, prefix) {
			continue
		}
		section, step, ok := parseStepSuffix(strings.TrimSuffix(name[len(prefix):], ext))
		if !ok {
			continue
		}
		key := slot{section, step}
		if old, exists := prio[key]; exists && old <= p {
			continue
		}
		prio[key] = p
		if out[section] == nil {
			out[section] = make(map[int]string)
		}
		out[section][step] = filepath.Join(dir, name)
	}
	return out
}

// parseStepSuffix parses "3" or "1.3" into (section, step).
func parseStepSuffix(s string) (section, step int, ok bool) {
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		step, ok = parseIndex(parts[0])
	case 2:
		var okSection bool
		section, okSection = parseIndex(parts[0])
		step, ok = parseIndex(parts[1])
		ok = ok && okSection
	}
	if !ok || step < 1 {
		return 0, 0, false
	}
	return section, step, true
}

// parseIndex accepts plain ASCII digits only.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
