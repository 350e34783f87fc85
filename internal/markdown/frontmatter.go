package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// SeedFrontMatter is the metadata block expected at the top of localized
// seed files. Unknown keys are collected into Custom and carried into the
// document payload untouched.
type SeedFrontMatter struct {
	Title          string         `yaml:"title"`
	Slug           string         `yaml:"slug"`
	Locale         string         `yaml:"locale"`
	Kind           string         `yaml:"kind"`
	SortOrder      *int           `yaml:"sort_order"`
	TranslationKey string         `yaml:"translation_key"`
	Status         string         `yaml:"status"`
	Summary        string         `yaml:"summary"`
	Custom         map[string]any `yaml:",inline"`
}

// ParseFrontMatter extracts the metadata block and the markdown body from the
// source bytes.
func ParseFrontMatter(source []byte) (SeedFrontMatter, []byte, error) {
	var meta SeedFrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return SeedFrontMatter{}, nil, fmt.Errorf("markdown: parse frontmatter: %w", err)
	}

	meta.Locale = strings.ToLower(strings.TrimSpace(meta.Locale))
	meta.Kind = strings.ToLower(strings.TrimSpace(meta.Kind))
	meta.TranslationKey = strings.TrimSpace(meta.TranslationKey)
	return meta, body, nil
}
