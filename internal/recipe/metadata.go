package recipe

import (
	"math"
	"strings"
)

var (
	tagKeys   = []string{"tags", "tag"}
	imageKeys = []string{"image", "images", "picture", "pictures"}
)

// Metadata is the parsed front-matter of a recipe. Recognised fields are
// exposed through accessors; everything else is reachable through Get and Raw.
type Metadata struct {
	Raw map[string]any `json:"raw"`
}

// Get returns the raw value stored under key.
func (m *Metadata) Get(key string) (any, bool) {
	if m == nil || m.Raw == nil {
		return nil, false
	}
	v, ok := m.Raw[key]
	return v, ok
}

// Title returns the "title" field, or "" when absent or not a string.
func (m *Metadata) Title() string {
	v, _ := m.Get("title")
	s, _ := v.(string)
	return s
}

// Servings returns the "servings" field when it is a non-negative integer.
func (m *Metadata) Servings() (int, bool) {
	v, ok := m.Get("servings")
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		if n >= 0 {
			return n, true
		}
	case int64:
		if n >= 0 && n <= math.MaxInt {
			return int(n), true
		}
	case uint64:
		if n <= math.MaxInt {
			return int(n), true
		}
	}
	return 0, false
}

// Tags returns tags in declaration order. A list value yields its string
// elements; a string value is split on commas.
func (m *Metadata) Tags() []string {
	for _, key := range tagKeys {
		v, ok := m.Get(key)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			var out []string
			for _, part := range strings.Split(t, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
			return out
		case []any:
			var out []string
			for _, item := range t {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}

// ImageURL returns the first image reference found under the image keys.
// It is independent of images discovered next to the recipe file.
func (m *Metadata) ImageURL() string {
	for _, key := range imageKeys {
		v, ok := m.Get(key)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case []any:
			if len(t) > 0 {
				if s, ok := t[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}
