package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// LocaleUUID derives the identifier for a seeded locale record.
func LocaleUUID(localeCode string) uuid.UUID {
	return UUID("go-localenav:locale:" + strings.ToLower(strings.TrimSpace(localeCode)))
}

// DocumentUUID derives the identifier for an imported document. The key is
// scoped by locale so sibling translations get distinct ids.
func DocumentUUID(kind, localeCode, slug string) uuid.UUID {
	return UUID("go-localenav:document:" + strings.ToLower(strings.TrimSpace(kind)) + ":" +
		strings.ToLower(strings.TrimSpace(localeCode)) + ":" + strings.TrimSpace(slug))
}

// TranslationGroupUUID derives the identifier for an imported translation
// group from its stable editorial key.
func TranslationGroupUUID(groupKey string) uuid.UUID {
	return UUID("go-localenav:translation_group:" + strings.TrimSpace(groupKey))
}
