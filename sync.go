package addonsync

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

// Direction selects which side is authoritative for a sync run.
type Direction int

const (
	// DirectionBoth runs catalogs-to-manifest, then manifest-to-catalogs.
	DirectionBoth Direction = iota
	// DirectionManifestToCatalogs copies manifest values into the catalogs.
	DirectionManifestToCatalogs
	// DirectionCatalogsToManifest copies catalog translations into the manifest.
	DirectionCatalogsToManifest
)

// Syncer reconciles the tracked metadata fields between an add-on manifest
// and its locale catalogs.
type Syncer struct {
	cfg Config
	out io.Writer
}

// NewSyncer returns a Syncer with defaults applied to cfg.
func NewSyncer(cfg Config) *Syncer {
	if cfg.BaseLocale == "" {
		cfg.BaseLocale = DefaultBaseLocale
	}
	if cfg.EmptyTranslations == "" {
		cfg.EmptyTranslations = EmptySkip
	}
	return &Syncer{cfg: cfg, out: os.Stderr}
}

// SetOutput redirects progress output (default os.Stderr).
func (s *Syncer) SetOutput(w io.Writer) {
	s.out = w
}

func (s *Syncer) logf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "addonsync: "+format+"\n", args...)
}

// Run processes the working path. With multiple set, every immediate
// subdirectory is synced as an independent add-on; failures are collected
// and reported without halting the remaining add-ons.
func (s *Syncer) Run(path string, multiple bool, direction Direction) error {
	if !multiple {
		return s.SyncAddon(path, direction)
	}
	dirs, err := ListAddonDirs(path)
	if err != nil {
		return err
	}
	var errs error
	for _, dir := range dirs {
		s.logf("syncing %s...", dir)
		if err := s.SyncAddon(dir, direction); err != nil {
			s.logf("%s: %v", dir, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", dir, err))
		}
	}
	return errs
}

// SyncAddon syncs a single add-on directory in the given direction.
func (s *Syncer) SyncAddon(dir string, direction Direction) error {
	manifestPath, err := FindManifest(dir)
	if err != nil {
		return err
	}
	manifest, err := ReadManifest(manifestPath)
	if err != nil {
		return err
	}
	catalogs, err := ListCatalogs(dir)
	if err != nil {
		return err
	}
	if len(catalogs) == 0 {
		s.logf("no catalogs found in %s... nothing to do", dir)
		return nil
	}

	switch direction {
	case DirectionManifestToCatalogs:
		return s.manifestToCatalogs(manifest, catalogs)
	case DirectionCatalogsToManifest:
		return s.catalogsToManifest(manifest, catalogs)
	default:
		return multierr.Combine(
			s.catalogsToManifest(manifest, catalogs),
			s.manifestToCatalogs(manifest, catalogs),
		)
	}
}

// translated applies the empty-translation policy to a catalog value.
func (s *Syncer) translated(text string, found bool) bool {
	if !found {
		return false
	}
	if text == "" && s.cfg.EmptyTranslations == EmptySkip {
		return false
	}
	return true
}

func (s *Syncer) baseCatalog(catalogs []*CatalogFile) *CatalogFile {
	for _, catalog := range catalogs {
		if catalog.Locale == s.cfg.BaseLocale {
			return catalog
		}
	}
	return nil
}

// catalogsToManifest copies catalog translations into the manifest. Catalog
// values win for non-base locales; the base-locale manifest value is never
// overwritten, only filled in when absent. Missing catalog entries leave
// the corresponding manifest value untouched.
func (s *Syncer) catalogsToManifest(manifest *ManifestFile, catalogs []*CatalogFile) error {
	s.logf("syncing catalogs to %s...", ManifestName)

	merged := manifest.Record().Clone()
	for _, catalog := range catalogs {
		record := catalog.Record(s.cfg.BaseLocale)
		for field, text := range record.Values {
			if !s.translated(text, true) {
				continue
			}
			if catalog.Locale == s.cfg.BaseLocale {
				if _, exists := merged.Value(field, s.cfg.BaseLocale); exists {
					continue
				}
			}
			merged.Set(field, catalog.Locale, text)
		}
	}

	changed, err := manifest.Write(merged)
	if err != nil {
		return err
	}
	if changed {
		s.logf("%s has been modified... completed", ManifestName)
	} else {
		s.logf("no changes made to %s... completed", ManifestName)
	}
	return nil
}

// manifestToCatalogs regenerates the tracked blocks of every catalog from
// the merged field values. Manifest values win; existing catalog
// translations survive for locales the manifest does not carry. The msgid
// source text comes from the base-locale manifest value, falling back to
// the base catalog's msgid. Fields with no source text anywhere are
// treated as empty and dropped.
func (s *Syncer) manifestToCatalogs(manifest *ManifestFile, catalogs []*CatalogFile) error {
	s.logf("syncing %s to catalogs...", ManifestName)

	record := manifest.Record()
	sources := map[Field]string{}
	var baseRecord CatalogRecord
	if base := s.baseCatalog(catalogs); base != nil {
		baseRecord = base.Record(s.cfg.BaseLocale)
	}
	for _, field := range Fields() {
		if text, found := record.Value(field, s.cfg.BaseLocale); found && text != "" {
			sources[field] = text
			continue
		}
		if text, found := baseRecord.Values[field]; found && text != "" {
			sources[field] = text
			continue
		}
		if len(record[field]) > 0 {
			s.logf("%s has no base-locale source text... treated as empty", field.Tag())
		}
	}

	var errs error
	for _, catalog := range catalogs {
		translations := map[Field]string{}
		if catalog.Locale != s.cfg.BaseLocale {
			existing := catalog.Record(s.cfg.BaseLocale)
			for _, field := range Fields() {
				if text, found := record.Value(field, catalog.Locale); s.translated(text, found) {
					translations[field] = text
					continue
				}
				if text, found := existing.Values[field]; s.translated(text, found) {
					translations[field] = text
				}
			}
		}
		changed, err := catalog.Write(sources, translations)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if changed {
			s.logf("%s catalog changed... writing", catalog.Locale)
		}
	}
	return errs
}
