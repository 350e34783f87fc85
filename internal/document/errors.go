package document

import (
	"errors"
	"fmt"
)

var (
	ErrKindInvalid        = errors.New("document: kind is not a known content type")
	ErrKindNotLocalized   = errors.New("document: kind does not take a locale")
	ErrLocaleRequired     = errors.New("document: locale is required for localized kinds")
	ErrUnknownLocale      = errors.New("document: unknown locale")
	ErrSlugRequired       = errors.New("document: slug is required")
	ErrSlugInvalid        = errors.New("document: slug contains invalid characters")
	ErrSlugExists         = errors.New("document: slug already exists in scope")
	ErrTitleRequired      = errors.New("document: title is required")
	ErrDocumentIDRequired = errors.New("document: document id required")
	ErrSourceNotFound     = errors.New("document: translation source not found")
	ErrTranslationExists  = errors.New("document: translation already exists for locale")
	ErrSameLocale         = errors.New("document: translation locale matches source locale")
	ErrStatusInvalid      = errors.New("document: status is invalid")
	ErrNotDraft           = errors.New("document: record is not a draft")
	ErrPayloadInvalid     = errors.New("document: payload failed schema validation")
	ErrLinkedElsewhere    = errors.New("document: document already belongs to another translation group")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a repository NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
