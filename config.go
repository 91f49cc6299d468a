package addonsync

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/kodiutils/addonsync/internal/langcode"
)

// ConfigFileName is the optional per-project configuration file, looked up
// in the working directory.
const ConfigFileName = ".addonsync.yaml"

// LoadConfig reads the YAML configuration at path. A missing file yields
// the zero Config (NewSyncer applies the defaults).
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.BaseLocale != "" {
		cfg.BaseLocale = langcode.Normalize(cfg.BaseLocale)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.EmptyTranslations {
	case "", EmptySkip, EmptyKeep:
		return nil
	}
	return fmt.Errorf("empty_translations must be %q or %q, got %q",
		EmptySkip, EmptyKeep, c.EmptyTranslations)
}
