// Package config loads nbkernel's optional TOML configuration file.
//
// The file supplies defaults for flags the user did not pass:
//
//	lang = "JULIA"  # selector used when --lang is omitted
//	indent = 2      # output indentation, 0 for compact JSON
//
// The default location follows the XDG base directory convention:
// $XDG_CONFIG_HOME/nbkernel/config.toml, falling back to
// ~/.config/nbkernel/config.toml.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/nbkernel/pkg/errors"
)

const (
	appName  = "nbkernel"
	fileName = "config.toml"
)

// Config holds the values read from the configuration file. Nil or empty
// fields were not set.
type Config struct {
	Lang   string `toml:"lang"`
	Indent *int   `toml:"indent"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config file at path. Unknown keys and negative
// indentation are rejected with PARSE_ERROR.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileAccess, err, "read config")
	}
	return parse(path, data)
}

// LoadDefault reads the config file at [DefaultPath]. A missing file is not
// an error and yields an empty Config.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileAccess, err, "read config")
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeParse, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Indent != nil && *cfg.Indent < 0 {
		return nil, errors.New(errors.ErrCodeParse, "config %s: indent must not be negative, got %d", path, *cfg.Indent)
	}
	cfg.Path = path
	return &cfg, nil
}
