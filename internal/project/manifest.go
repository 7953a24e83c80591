// Package project locates and loads the vlisp.toml project manifest and
// enumerates the .vl sources a project owns.
package project

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name the walk-up discovery looks for.
const ManifestName = "vlisp.toml"

// Manifest mirrors vlisp.toml. Zero values mean "not set": flags override
// manifest values, manifest values override built-in defaults.
type Manifest struct {
	Project ProjectConfig `toml:"project"`
	Format  FormatConfig  `toml:"format"`
	Cache   CacheConfig   `toml:"cache"`
}

// ProjectConfig names the project and its entry file.
type ProjectConfig struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

// FormatConfig is parsed but not applied yet: the canonical form has a
// single layout today. Width is reserved for a wrapping printer.
type FormatConfig struct {
	Width int `toml:"width"`
}

// CacheConfig controls the token disk cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &m, nil
}

// LoadNearest walks up from startDir and loads the first vlisp.toml it
// finds. ok is false when no manifest exists above startDir.
func LoadNearest(startDir string) (m *Manifest, path string, ok bool, err error) {
	path, ok, err = FindManifest(startDir)
	if err != nil || !ok {
		return nil, "", ok, err
	}
	m, err = Load(path)
	if err != nil {
		return nil, "", false, err
	}
	return m, path, true, nil
}
