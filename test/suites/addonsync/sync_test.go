package addonsync_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kodiutils/addonsync"
)

const manifestFixture = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<addon id="plugin.video.example" name="Example" version="1.0.0" provider-name="example">
    <extension point="xbmc.addon.metadata">
        <summary lang="en_GB">A tool.</summary>
        <description lang="en_GB">Example description.</description>
        <license>GPL-3.0-only</license>
        <platform>all</platform>
    </extension>
</addon>
`

const poHeader = `# Kodi Media Center language file
msgid ""
msgstr ""
"Project-Id-Version: plugin.video.example\n"
"Language: LOCALE\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

`

var _ = Describe("Metadata sync", func() {
	var addonDir string
	var syncer *addonsync.Syncer

	writeCatalog := func(code string, body string) string {
		langDir := filepath.Join(addonDir, "resources", "language", "resource.language."+code)
		Expect(os.MkdirAll(langDir, 0755)).To(Succeed())
		path := filepath.Join(langDir, "strings.po")
		content := strings.ReplaceAll(poHeader, "LOCALE", code) + body
		Expect(ioutil.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	readAll := func(path string) string {
		data, err := ioutil.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		return string(data)
	}

	BeforeEach(func() {
		dir, err := ioutil.TempDir("", "addonsync-suite-*")
		Expect(err).NotTo(HaveOccurred())
		addonDir = dir

		Expect(ioutil.WriteFile(filepath.Join(addonDir, addonsync.ManifestName),
			[]byte(manifestFixture), 0644)).To(Succeed())
		writeCatalog("en_gb", `msgctxt "Addon Summary"
msgid "A tool."
msgstr ""

msgctxt "Addon Description"
msgid "Example description."
msgstr ""

`)

		syncer = addonsync.NewSyncer(addonsync.Config{})
		syncer.SetOutput(&bytes.Buffer{})
	})

	AfterEach(func() {
		Expect(os.RemoveAll(addonDir)).To(Succeed())
	})

	It("should copy catalog translations into the manifest", func() {
		writeCatalog("de_de", `msgctxt "Addon Summary"
msgid "A tool."
msgstr "Ein Werkzeug."

`)
		Expect(syncer.SyncAddon(addonDir, addonsync.DirectionCatalogsToManifest)).To(Succeed())
		manifest := readAll(filepath.Join(addonDir, addonsync.ManifestName))
		Expect(manifest).To(ContainSubstring(`<summary lang="de_DE">Ein Werkzeug.</summary>`))
	})

	It("should keep the base-locale manifest value authoritative", func() {
		writeCatalog("de_de", `msgctxt "Addon Summary"
msgid "Stale source."
msgstr "Ein Werkzeug."

`)
		Expect(syncer.SyncAddon(addonDir, addonsync.DirectionCatalogsToManifest)).To(Succeed())
		manifest := readAll(filepath.Join(addonDir, addonsync.ManifestName))
		Expect(manifest).To(ContainSubstring(`<summary lang="en_GB">A tool.</summary>`))
		Expect(manifest).NotTo(ContainSubstring("Stale source."))
	})

	It("should not overwrite an existing catalog translation", func() {
		path := writeCatalog("de_de", `msgctxt "Addon Summary"
msgid "A tool."
msgstr "Ein Werkzeug."

msgctxt "Addon Description"
msgid "Example description."
msgstr ""

`)
		Expect(syncer.SyncAddon(addonDir, addonsync.DirectionManifestToCatalogs)).To(Succeed())
		Expect(readAll(path)).To(ContainSubstring(`msgstr "Ein Werkzeug."`))
	})

	It("should regenerate catalog blocks from the manifest source text", func() {
		path := writeCatalog("de_de", "")
		Expect(syncer.SyncAddon(addonDir, addonsync.DirectionManifestToCatalogs)).To(Succeed())
		content := readAll(path)
		Expect(content).To(ContainSubstring(`msgctxt "Addon Summary"`))
		Expect(content).To(ContainSubstring(`msgid "A tool."`))
		Expect(content).To(ContainSubstring(`msgctxt "Addon Description"`))
	})

	It("should leave unrelated manifest fields untouched", func() {
		writeCatalog("de_de", `msgctxt "Addon Summary"
msgid "A tool."
msgstr "Ein Werkzeug."

`)
		Expect(syncer.SyncAddon(addonDir, addonsync.DirectionBoth)).To(Succeed())
		manifest := readAll(filepath.Join(addonDir, addonsync.ManifestName))
		Expect(manifest).To(ContainSubstring("<license>GPL-3.0-only</license>"))
		Expect(manifest).To(ContainSubstring("<platform>all</platform>"))
	})

	It("should report a missing manifest", func() {
		Expect(os.Remove(filepath.Join(addonDir, addonsync.ManifestName))).To(Succeed())
		err := syncer.SyncAddon(addonDir, addonsync.DirectionBoth)
		Expect(err).To(HaveOccurred())
		Expect(addonsync.Kind(err)).To(Equal(addonsync.KindMissingManifest))
	})
})
