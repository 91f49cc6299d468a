package addonsync

import "sort"

// Field identifies one of the tracked localized metadata fields.
type Field string

const (
	FieldSummary     Field = "summary"
	FieldDescription Field = "description"
	FieldDisclaimer  Field = "disclaimer"
)

// Fields returns the tracked fields in the order they are written out.
func Fields() []Field {
	return []Field{FieldSummary, FieldDescription, FieldDisclaimer}
}

// Tag returns the manifest element name for the field.
func (f Field) Tag() string {
	return string(f)
}

// Context returns the gettext msgctxt identifying the field in a catalog.
func (f Field) Context() string {
	switch f {
	case FieldSummary:
		return "Addon Summary"
	case FieldDescription:
		return "Addon Description"
	case FieldDisclaimer:
		return "Addon Disclaimer"
	}
	return ""
}

// ManifestRecord maps tracked fields to per-locale text values.
type ManifestRecord map[Field]map[string]string

// Value returns the text for a field and locale.
func (r ManifestRecord) Value(field Field, locale string) (string, bool) {
	locales, found := r[field]
	if !found {
		return "", false
	}
	text, found := locales[locale]
	return text, found
}

// Set stores the text for a field and locale.
func (r ManifestRecord) Set(field Field, locale string, text string) {
	if r[field] == nil {
		r[field] = map[string]string{}
	}
	r[field][locale] = text
}

// Locales returns the locales with a value for the field, sorted.
func (r ManifestRecord) Locales(field Field) []string {
	locales := make([]string, 0, len(r[field]))
	for locale := range r[field] {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// Clone returns a deep copy of the record.
func (r ManifestRecord) Clone() ManifestRecord {
	out := ManifestRecord{}
	for field, locales := range r {
		for locale, text := range locales {
			out.Set(field, locale, text)
		}
	}
	return out
}

// CatalogRecord holds the tracked field values for a single locale catalog.
// For the base locale the values are the msgid source texts; for any other
// locale they are the msgstr translations.
type CatalogRecord struct {
	Locale string
	Values map[Field]string
}

// EmptyTranslations policy values. EmptySkip treats an empty catalog entry
// as "not yet translated" and drops it; EmptyKeep treats it as a legitimate
// translation to the empty string.
const (
	EmptySkip = "skip"
	EmptyKeep = "keep"
)

// DefaultBaseLocale is the locale whose manifest values serve as the
// source text for translators.
const DefaultBaseLocale = "en_GB"

// Config controls a sync run.
type Config struct {
	BaseLocale        string `yaml:"base_locale"`
	EmptyTranslations string `yaml:"empty_translations"`
}
