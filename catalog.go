package addonsync

import (
	"os"
	"strings"
)

// CatalogFile is a per-locale gettext catalog (strings.po) with its original
// content, line by line. Only the three tracked msgctxt blocks are ever
// touched; every other entry is preserved byte for byte.
type CatalogFile struct {
	Path   string
	Locale string

	lines []string // original lines, terminators included
}

// ReadCatalog reads the catalog at path for the given locale.
func ReadCatalog(path string, locale string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newSyncError(KindParse, path, "read catalog", err)
	}
	return &CatalogFile{
		Path:   path,
		Locale: locale,
		lines:  strings.SplitAfter(string(data), "\n"),
	}, nil
}

// Record extracts the tracked field values. For the base locale the msgid
// carries the text, otherwise the msgstr does. Fields whose block is absent
// from the catalog are left out of the record entirely.
func (c *CatalogFile) Record(baseLocale string) CatalogRecord {
	fromMsgid := c.Locale == baseLocale
	values := map[Field]string{}
	for _, field := range Fields() {
		if text, found := extractBlockValue(c.lines, field.Context(), fromMsgid); found {
			values[field] = text
		}
	}
	return CatalogRecord{Locale: c.Locale, Values: values}
}

// extractBlockValue scans for the msgctxt block and joins the (possibly
// multi-line) msgid or msgstr string that follows.
func extractBlockValue(lines []string, ctxt string, fromMsgid bool) (string, bool) {
	target := `msgctxt "` + ctxt + `"`
	keyword := "msgstr "
	if fromMsgid {
		keyword = "msgid "
	}

	inBlock := false
	collecting := false
	var segments []string
	for _, line := range lines {
		if !inBlock {
			if strings.HasPrefix(line, target) {
				inBlock = true
			}
			continue
		}
		if !collecting {
			if strings.HasPrefix(line, keyword) {
				collecting = true
				segments = append(segments, strings.TrimPrefix(line, keyword))
			}
			continue
		}
		if !strings.HasPrefix(line, `"`) {
			break
		}
		segments = append(segments, line)
	}
	if !collecting {
		return "", false
	}
	return decodePOString(segments), true
}

// decodePOString joins quoted PO string segments into the plain text value.
// Escaped quotes are unescaped; other escape sequences (\n, \t) stay
// literal, matching what single-line manifest elements can hold.
func decodePOString(segments []string) string {
	var b strings.Builder
	for _, segment := range segments {
		segment = strings.TrimRight(segment, "\r\n")
		segment = strings.TrimSpace(segment)
		if len(segment) >= 2 && strings.HasPrefix(segment, `"`) && strings.HasSuffix(segment, `"`) {
			segment = segment[1 : len(segment)-1]
		}
		b.WriteString(segment)
	}
	return strings.ReplaceAll(b.String(), `\"`, `"`)
}

func encodePOString(text string) string {
	escaped := strings.ReplaceAll(text, `\"`, "\x00")
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return strings.ReplaceAll(escaped, "\x00", `\"`)
}

func trackedContextPrefixes() []string {
	prefixes := make([]string, 0, 3)
	for _, field := range Fields() {
		prefixes = append(prefixes, `msgctxt "`+field.Context()+`"`)
	}
	return prefixes
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// stripTrackedBlocks removes the tracked msgctxt blocks (msgctxt, msgid,
// msgstr, their continuation lines, and one trailing blank line) and keeps
// everything else.
func stripTrackedBlocks(lines []string) []string {
	prefixes := trackedContextPrefixes()
	out := make([]string, 0, len(lines))
	inBlock := false
	seenID := false
	seenStr := false
	for _, line := range lines {
		if !inBlock {
			if hasAnyPrefix(line, prefixes) {
				inBlock, seenID, seenStr = true, false, false
				continue
			}
			out = append(out, line)
			continue
		}
		if !seenID {
			if strings.HasPrefix(line, "msgid ") {
				seenID = true
			}
			continue
		}
		if !seenStr {
			if strings.HasPrefix(line, "msgstr ") {
				seenStr = true
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			inBlock = false
			continue
		}
		if strings.HasPrefix(line, `"`) {
			continue
		}
		inBlock = false
		if hasAnyPrefix(line, prefixes) {
			inBlock, seenID, seenStr = true, false, false
			continue
		}
		out = append(out, line)
	}
	return out
}

// headerInsertIndex finds the position just past the PO header: the first
// msgstr "" with its continuation lines, then the line ending the header.
// Returns -1 when no header can be located.
func headerInsertIndex(lines []string) int {
	seenHeader := false
	seenQuote := false
	for index, line := range lines {
		if !seenHeader {
			if strings.HasPrefix(line, `msgstr ""`) {
				seenHeader = true
			}
			continue
		}
		if !seenQuote {
			if strings.HasPrefix(line, `"`) {
				seenQuote = true
			}
			continue
		}
		if !strings.HasPrefix(line, `"`) {
			return index + 1
		}
	}
	return -1
}

// Write regenerates the tracked blocks from sources (msgid text per field)
// and translations (msgstr text per field), leaving all other entries
// untouched. Fields without a source text are dropped from the catalog.
// Returns whether the file changed.
func (c *CatalogFile) Write(sources map[Field]string, translations map[Field]string) (bool, error) {
	stripped := stripTrackedBlocks(c.lines)
	insert := headerInsertIndex(stripped)
	if insert < 0 {
		return false, newSyncError(KindParse, c.Path, "catalog header not found", nil)
	}

	generated := make([]string, 0, 12)
	for _, field := range Fields() {
		source, found := sources[field]
		if !found || source == "" {
			continue
		}
		generated = append(generated,
			`msgctxt "`+field.Context()+`"`+"\n",
			`msgid "`+encodePOString(source)+`"`+"\n",
			`msgstr "`+encodePOString(translations[field])+`"`+"\n",
			"\n",
		)
	}

	out := make([]string, 0, len(stripped)+len(generated))
	out = append(out, stripped[:insert]...)
	out = append(out, generated...)
	out = append(out, stripped[insert:]...)

	if strings.Join(out, "") == strings.Join(c.lines, "") {
		return false, nil
	}
	if err := os.WriteFile(c.Path, []byte(strings.Join(out, "")), 0644); err != nil {
		return false, newSyncError(KindWrite, c.Path, "write catalog", err)
	}
	c.lines = out
	return true, nil
}
