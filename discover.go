package addonsync

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kodiutils/addonsync/internal/langcode"
)

// FindManifest returns the path of the add-on manifest in addonDir.
func FindManifest(addonDir string) (string, error) {
	path := filepath.Join(addonDir, ManifestName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", newSyncError(KindMissingManifest, path, "no "+ManifestName+" found", err)
	}
	return path, nil
}

// ListCatalogs walks addonDir for .po files under resource.language.<code>
// directories and reads each, paired with the locale code from its path.
// Results are sorted by locale for deterministic processing.
func ListCatalogs(addonDir string) ([]*CatalogFile, error) {
	var catalogs []*CatalogFile
	err := filepath.WalkDir(addonDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".po") {
			return nil
		}
		locale := langcode.FromPath(filepath.Dir(path))
		if locale == "" {
			return nil
		}
		catalog, err := ReadCatalog(path, locale)
		if err != nil {
			return err
		}
		catalogs = append(catalogs, catalog)
		return nil
	})
	if err != nil {
		if Kind(err) != 0 {
			return nil, err
		}
		return nil, newSyncError(KindParse, addonDir, "discover catalogs", err)
	}
	sort.Slice(catalogs, func(i, j int) bool {
		return catalogs[i].Locale < catalogs[j].Locale
	})
	return catalogs, nil
}

// ListAddonDirs returns the immediate subdirectories of workDir, each
// treated as an independent add-on in multi-addon mode.
func ListAddonDirs(workDir string) ([]string, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, newSyncError(KindParse, workDir, "list add-on directories", err)
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirs = append(dirs, filepath.Join(workDir, entry.Name()))
	}
	sort.Strings(dirs)
	return dirs, nil
}
