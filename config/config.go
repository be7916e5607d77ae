// Package config loads optional per-package generation settings from an
// rglue.yaml file at the package root. A missing file just means defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rglue/rglue/errors"
)

// ConfigFileName is looked up at the root of the scanned package directory.
const ConfigFileName = "rglue.yaml"

// Config holds the per-package generation settings.
type Config struct {
	// Package overrides the package name (default: directory base name).
	Package string `mapstructure:"package"`

	// Includes replaces the default C++ preamble include lines.
	Includes []string `mapstructure:"includes"`

	// Verbose turns on per-file export listings for this package.
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults installs the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("package", "")
	v.SetDefault("includes", []string{})
	v.SetDefault("verbose", false)
}

// Load reads rglue.yaml from the given package directory. A missing file
// yields the defaults; a malformed file is an error.
func Load(pkgDir string) (*Config, error) {
	path := filepath.Join(pkgDir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		v := viper.New()
		SetDefaults(v)
		return unmarshal(v, path)
	}
	return LoadFromFile(path)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	return unmarshal(v, path)
}

func unmarshal(v *viper.Viper, path string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", path)
	}
	return &config, nil
}
