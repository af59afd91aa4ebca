// Package parser splits YAML front-matter from recipe text and extracts
// relative recipe references.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const delim = "---"

// referenceRe matches "@./path" or "@../path". The path ends at whitespace
// or at the "{" that opens a quantity annotation.
var referenceRe = regexp.MustCompile(`@(\.\.?/[^\s{]+)`)

// ErrFrontmatter is returned when a delimited front-matter block is not a
// valid YAML mapping.
var ErrFrontmatter = errors.New("invalid front-matter")

// Result holds the output of parsing recipe text.
type Result struct {
	Frontmatter map[string]any
	Body        string
	References  []string
}

// Parse splits front-matter from the body and extracts references.
func Parse(data []byte) (*Result, error) {
	fm, body, err := SplitFrontmatter(string(data))
	if err != nil {
		return nil, err
	}
	return &Result{
		Frontmatter: fm,
		Body:        body,
		References:  ExtractReferences(string(data)),
	}, nil
}

// SplitFrontmatter separates a leading front-matter block from the body.
// The first line must be the "---" marker and the block ends at the next
// marker line. Without a closing marker the whole text is body. An empty
// block yields a nil map.
func SplitFrontmatter(text string) (map[string]any, string, error) {
	first, rest, found := strings.Cut(text, "\n")
	if strings.TrimSpace(first) != delim || !found {
		return nil, text, nil
	}

	var block []string
	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if strings.TrimSpace(line) == delim {
			fm, err := decodeYAML(strings.Join(block, "\n"))
			if err != nil {
				return nil, text, err
			}
			return fm, rest, nil
		}
		block = append(block, line)
	}

	// No closing marker.
	return nil, text, nil
}

func decodeYAML(block string) (map[string]any, error) {
	if strings.TrimSpace(block) == "" {
		return nil, nil
	}
	var fm map[string]any
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}
	return fm, nil
}

// ExtractReferences returns relative recipe references in first-occurrence
// order, without duplicates. Targets are not checked for existence.
func ExtractReferences(text string) []string {
	matches := referenceRe.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		ref := m[1]
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
