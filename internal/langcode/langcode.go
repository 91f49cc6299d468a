// Package langcode extracts and canonicalizes Kodi locale codes
// (e.g. "en_GB", "pt_BR", "sr_RS@latin") from language resource paths.
package langcode

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

var pathRegex = regexp.MustCompile(
	`resource\.language\.([a-z]{2,3}(?:_[A-Za-z]{2})?(?:@\S+)?)`)

// FromPath extracts the locale code from a path containing a
// resource.language.<code> component. Returns "" when none is present.
func FromPath(path string) string {
	match := pathRegex.FindStringSubmatch(path)
	if match == nil {
		return ""
	}
	return Normalize(match[1])
}

// Normalize canonicalizes a Kodi locale code: lower-case language,
// upper-case region, underscore separator, any @modifier preserved
// ("en_gb" -> "en_GB", "sr_rs@latin" -> "sr_RS@latin").
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	modifier := ""
	if idx := strings.Index(code, "@"); idx >= 0 {
		modifier = code[idx:]
		code = code[:idx]
	}
	if tag, err := language.Parse(strings.ReplaceAll(code, "_", "-")); err == nil {
		// Catalogs are keyed by the literal directory code, so only case
		// may change; reject rewrites to a different language or added
		// script subtags.
		if canonical := strings.ReplaceAll(tag.String(), "-", "_"); strings.EqualFold(code, canonical) {
			return canonical + modifier
		}
	}
	return fallbackNormalize(code) + modifier
}

func fallbackNormalize(code string) string {
	parts := strings.SplitN(code, "_", 2)
	out := strings.ToLower(parts[0])
	if len(parts) == 2 && parts[1] != "" {
		region := parts[1]
		if len(region) >= 2 {
			region = strings.ToUpper(region[:2]) + region[2:]
		}
		out += "_" + region
	}
	return out
}
