package document

import "strings"

// Kind tags a document with one member of the closed content-type set. Each
// kind carries a static spec so pathname generation and slug scoping can be
// checked exhaustively instead of probing loosely-typed records at runtime.
type Kind string

const (
	// KindPage is a standalone page addressed by its slug alone.
	KindPage Kind = "page"
	// KindArticle is a dated collection entry addressed under a localized
	// collection prefix.
	KindArticle Kind = "article"
	// KindArticleIndex is the collection listing; it has no slug of its own
	// and resolves to the localized prefix.
	KindArticleIndex Kind = "article_index"
	// KindHome is the singleton homepage; it resolves to the locale root.
	KindHome Kind = "home"
	// KindSiteSettings is singleton configuration. It is not locale-aware and
	// never routable; its slug is a global singleton key.
	KindSiteSettings Kind = "site_settings"
)

type kindSpec struct {
	localized bool
	routable  bool
	prefixed  bool
	slugless  bool
}

var kindSpecs = map[Kind]kindSpec{
	KindPage:         {localized: true, routable: true},
	KindArticle:      {localized: true, routable: true, prefixed: true},
	KindArticleIndex: {localized: true, routable: true, prefixed: true, slugless: true},
	KindHome:         {localized: true, routable: true, slugless: true},
	KindSiteSettings: {},
}

// Kinds returns every member of the closed set in a stable order.
func Kinds() []Kind {
	return []Kind{KindPage, KindArticle, KindArticleIndex, KindHome, KindSiteSettings}
}

// ParseKind normalizes raw into a Kind, reporting membership in the closed set.
func ParseKind(raw string) (Kind, bool) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := kindSpecs[kind]
	return kind, ok
}

// Valid reports whether the kind belongs to the closed set.
func (k Kind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// Localized reports whether documents of this kind carry a locale code and
// scope slug uniqueness per locale.
func (k Kind) Localized() bool {
	return kindSpecs[k].localized
}

// Routable reports whether documents of this kind produce a public path.
func (k Kind) Routable() bool {
	return kindSpecs[k].routable
}

// Prefixed reports whether the kind's path uses a localized collection prefix.
func (k Kind) Prefixed() bool {
	return kindSpecs[k].prefixed
}

// Slugless reports whether the kind's path ignores the document slug.
func (k Kind) Slugless() bool {
	return kindSpecs[k].slugless
}

func (k Kind) String() string {
	return string(k)
}
