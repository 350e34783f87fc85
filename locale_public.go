package localenav

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-localenav/internal/document"
	"github.com/google/uuid"
)

var (
	// ErrLocaleCodeRequired indicates locale lookups require a non-empty locale code.
	ErrLocaleCodeRequired = errors.New("localenav: locale code is required")

	errNilModule = errors.New("localenav: module is not initialized")
)

// LocaleNotFoundError describes unknown locale-code lookups and unwraps to ErrUnknownLocale.
type LocaleNotFoundError struct {
	Code string
}

func (e *LocaleNotFoundError) Error() string {
	code := strings.TrimSpace(e.Code)
	if code == "" {
		return "localenav: locale not found"
	}
	return fmt.Sprintf("localenav: locale %q not found", code)
}

func (e *LocaleNotFoundError) Unwrap() error {
	return ErrUnknownLocale
}

// LocaleInfo is the stable public locale view exposed by localenav.
type LocaleInfo struct {
	ID         uuid.UUID
	Code       string
	Display    string
	NativeName *string
	IsActive   bool
	IsDefault  bool
	Metadata   map[string]any
}

// LocaleService resolves locale records through the public localenav contract.
type LocaleService interface {
	ResolveByCode(ctx context.Context, code string) (LocaleInfo, error)
	List(ctx context.Context) ([]LocaleInfo, error)
}

type localeService struct {
	module *Module
}

// Locales returns the public locale lookup service.
func (m *Module) Locales() LocaleService {
	return &localeService{module: m}
}

func (s *localeService) ResolveByCode(ctx context.Context, code string) (LocaleInfo, error) {
	if s == nil || s.module == nil || s.module.container == nil {
		return LocaleInfo{}, errNilModule
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return LocaleInfo{}, ErrLocaleCodeRequired
	}

	repo := s.module.container.LocaleRepository()
	if repo == nil {
		return LocaleInfo{}, errNilModule
	}

	locale, err := repo.GetByCode(ctx, code)
	if err != nil {
		if document.IsNotFound(err) {
			return LocaleInfo{}, &LocaleNotFoundError{Code: code}
		}
		return LocaleInfo{}, err
	}
	if locale == nil {
		return LocaleInfo{}, &LocaleNotFoundError{Code: code}
	}

	return localeInfoFrom(locale), nil
}

func (s *localeService) List(ctx context.Context) ([]LocaleInfo, error) {
	if s == nil || s.module == nil || s.module.container == nil {
		return nil, errNilModule
	}

	repo := s.module.container.LocaleRepository()
	if repo == nil {
		return nil, errNilModule
	}

	locales, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]LocaleInfo, 0, len(locales))
	for _, locale := range locales {
		if locale == nil || !locale.IsActive {
			continue
		}
		out = append(out, localeInfoFrom(locale))
	}
	return out, nil
}

func localeInfoFrom(locale *document.Locale) LocaleInfo {
	return LocaleInfo{
		ID:         locale.ID,
		Code:       locale.Code,
		Display:    locale.Display,
		NativeName: cloneStringPtr(locale.NativeName),
		IsActive:   locale.IsActive,
		IsDefault:  locale.IsDefault,
		Metadata:   cloneAnyMap(locale.Metadata),
	}
}

func cloneAnyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func cloneStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
