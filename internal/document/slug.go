package document

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// NormalizeSlug folds a raw slug or title into the canonical URL form the
// uniqueness validator compares against: trimmed, lowered, transliterated.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(strings.TrimSpace(value))
}

// IsValidSlug reports whether value is already in canonical slug form.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
