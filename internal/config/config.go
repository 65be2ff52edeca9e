// Package config loads the optional errcodes.toml that scopes an audit.
// Every knob has a default; the file only needs to exist when a tree departs
// from the usual layout.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up at the audit root.
const FileName = "errcodes.toml"

// Config scopes the scan.
type Config struct {
	// Prefix is the subtree under the audit root that holds the sources,
	// e.g. "src". When the directory does not exist the root itself is
	// scanned.
	Prefix string `toml:"prefix"`
	// Extensions lists the file suffixes to audit.
	Extensions []string `toml:"extensions"`
	// Include restricts the audit to matching files when non-empty.
	Include []string `toml:"include"`
	// Exclude skips matching files and prunes matching directories.
	Exclude []string `toml:"exclude"`
}

// Default returns the configuration used when no errcodes.toml exists.
func Default() Config {
	return Config{
		Prefix:     "src",
		Extensions: []string{".cpp", ".h", ".hpp", ".c"},
		Exclude:    []string{"**/.git", "**/build", "**/third_party"},
	}
}

// Load decodes a TOML file over the defaults, so a file may set only the
// keys it cares about.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find locates errcodes.toml at the audit root, if present.
func Find(root string) (string, bool) {
	path := filepath.Join(root, FileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
