package addonsync

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/kodiutils/addonsync/internal/langcode"
)

// ManifestName is the add-on manifest filename.
const ManifestName = "addon.xml"

const defaultIndent = "        "

// Tracked elements are matched line-wise: a whole single-line element with
// a lang attribute. Anything else in the manifest is left untouched.
var (
	summaryRegex = regexp.MustCompile(`(?m)^(\s*?)<summary lang=["']` +
		`([^"']+?)["']>([^<]*?)</summary>\s*?$`)
	descriptionRegex = regexp.MustCompile(`(?m)^(\s*?)<description lang=["']` +
		`([^"']+?)["']>([^<]*?)</description>\s*?$`)
	disclaimerRegex = regexp.MustCompile(`(?m)^(\s*?)<disclaimer lang=["']` +
		`([^"']+?)["']>([^<]*?)</disclaimer>\s*?$`)

	// Sibling metadata elements, used to detect indentation when the
	// manifest has no tracked elements yet.
	metadataIndentRegex = regexp.MustCompile(`(?m)^(\s*?)<` +
		`(?:news|assets|platform|license|source|forum|reuselanguageinvoker)` +
		`>[^<]*?` +
		`(?:</(?:news|assets|platform|license|source|forum|reuselanguageinvoker)>)?` +
		`\s*?$`)
)

func fieldRegex(field Field) *regexp.Regexp {
	switch field {
	case FieldSummary:
		return summaryRegex
	case FieldDescription:
		return descriptionRegex
	case FieldDisclaimer:
		return disclaimerRegex
	}
	return nil
}

// ManifestFile is an add-on manifest with its tracked field values and the
// original file content, line by line.
type ManifestFile struct {
	Path string

	lines  []string // original lines, terminators included
	record ManifestRecord
	indent string
}

// ReadManifest reads and parses the manifest at path.
func ReadManifest(path string) (*ManifestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newSyncError(KindMissingManifest, path, "no "+ManifestName+" found", err)
		}
		return nil, newSyncError(KindParse, path, "read manifest", err)
	}

	content := string(data)
	m := &ManifestFile{
		Path:   path,
		lines:  strings.SplitAfter(content, "\n"),
		record: ManifestRecord{},
	}
	for _, field := range Fields() {
		for _, match := range fieldRegex(field).FindAllStringSubmatch(content, -1) {
			if m.indent == "" {
				m.indent = match[1]
			}
			m.record.Set(field, langcode.Normalize(match[2]), match[3])
		}
	}
	if m.indent == "" {
		if match := metadataIndentRegex.FindStringSubmatch(content); match != nil {
			m.indent = match[1]
		}
	}
	return m, nil
}

// Record returns the tracked field values read from the manifest.
func (m *ManifestFile) Record() ManifestRecord {
	return m.record
}

func (m *ManifestFile) indentation() string {
	if m.indent != "" {
		return m.indent
	}
	return defaultIndent
}

func trackedLine(line string) bool {
	for _, field := range Fields() {
		if fieldRegex(field).MatchString(strings.TrimSuffix(line, "\n")) {
			return true
		}
	}
	return false
}

// metadataInsertIndex finds where regenerated element lines go: directly
// under <extension point="xbmc.addon.metadata">, before its </extension>.
func metadataInsertIndex(lines []string) int {
	insert := -1
	for index, line := range lines {
		if strings.Contains(line, `<extension point="xbmc.addon.metadata">`) {
			insert = index + 1
		}
		if insert > -1 && strings.Contains(line, "</extension>") {
			return index
		}
	}
	return insert
}

// Write rewrites the tracked elements in place from record, preserving all
// other manifest content byte for byte. Returns whether the file changed.
func (m *ManifestFile) Write(record ManifestRecord) (bool, error) {
	kept := make([]string, 0, len(m.lines))
	for _, line := range m.lines {
		if trackedLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	insert := metadataInsertIndex(kept)
	if insert < 0 {
		return false, newSyncError(KindParse, m.Path, "metadata extension block not found", nil)
	}

	indent := m.indentation()
	generated := make([]string, 0, 8)
	for _, field := range Fields() {
		for _, locale := range record.Locales(field) {
			text, _ := record.Value(field, locale)
			generated = append(generated, fmt.Sprintf("%s<%s lang=%q>%s</%s>\n",
				indent, field.Tag(), locale, text, field.Tag()))
		}
	}

	out := make([]string, 0, len(kept)+len(generated))
	out = append(out, kept[:insert]...)
	out = append(out, generated...)
	out = append(out, kept[insert:]...)

	if strings.Join(out, "") == strings.Join(m.lines, "") {
		return false, nil
	}
	if err := os.WriteFile(m.Path, []byte(strings.Join(out, "")), 0644); err != nil {
		return false, newSyncError(KindWrite, m.Path, "write manifest", err)
	}
	m.lines = out
	m.record = record.Clone()
	return true, nil
}
