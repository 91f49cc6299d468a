package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kodiutils/addonsync"
)

type options struct {
	poToXML        bool
	xmlToPO        bool
	path           string
	multipleAddons bool
	configPath     string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "addonsync",
		Short: "Sync add-on metadata translations between addon.xml and po files",
		Long: `addonsync keeps the localized summary, description and disclaimer of a
Kodi add-on in sync between the addon.xml manifest and the per-locale
strings.po catalogs. With neither direction flag, both directions run:
po files to addon.xml first, then addon.xml back to the po files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&opts)
		},
	}
	cmd.Flags().BoolVar(&opts.poToXML, "po-to-xml", false,
		"Sync po file values to the addon.xml file")
	cmd.Flags().BoolVar(&opts.xmlToPO, "xml-to-po", false,
		"Sync addon.xml values to all po files")
	cmd.Flags().StringVar(&opts.path, "path", ".",
		"Working directory")
	cmd.Flags().BoolVar(&opts.multipleAddons, "multiple-addons", false,
		"Treat subdirectories of the working directory as independent add-ons")
	cmd.Flags().StringVar(&opts.configPath, "config", "",
		"Configuration file (default: "+addonsync.ConfigFileName+" in the working directory)")
	cmd.MarkFlagsMutuallyExclusive("po-to-xml", "xml-to-po")
	return cmd
}

func run(opts *options) error {
	info, err := os.Stat(opts.path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", opts.path)
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = filepath.Join(opts.path, addonsync.ConfigFileName)
	}
	cfg, err := addonsync.LoadConfig(configPath)
	if err != nil {
		return err
	}

	direction := addonsync.DirectionBoth
	switch {
	case opts.poToXML:
		direction = addonsync.DirectionCatalogsToManifest
	case opts.xmlToPO:
		direction = addonsync.DirectionManifestToCatalogs
	}

	return addonsync.NewSyncer(cfg).Run(opts.path, opts.multipleAddons, direction)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "addonsync: %v\n", err)
		os.Exit(1)
	}
}
