// Package config holds asset paths and render settings, loadable from a JSON
// file with CLI flag overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and run settings.
type Config struct {
	// Asset paths. Relative paths resolve against AssetsDir.
	AssetsDir   string `json:"assets_dir"`
	AtlasJSON   string `json:"atlas_json"`
	AtlasImage  string `json:"atlas_image"`
	SlotImage   string `json:"slot_image"`
	BorderImage string `json:"border_image"`
	FontJSON    string `json:"font_json"`
	FontImage   string `json:"font_image"`

	OutputDir string `json:"output_dir"`

	// Run settings.
	Workers      int    `json:"workers"`
	Format       string `json:"format"` // "png" or "webp"
	FetchAvatars bool   `json:"fetch_avatars"`
	FetchLimit   int    `json:"fetch_limit"` // concurrent avatar fetches
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Workers   int
	WebP      bool
	NoAvatar  bool
}

// Load reads a JSON config file. Fields absent from the file keep their
// defaults until Resolve runs.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Config{FetchAvatars: true}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve fills empty fields with defaults. CLI flags take priority when set.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.WebP {
		c.Format = "webp"
	}
	if flags.NoAvatar {
		c.FetchAvatars = false
	}

	if c.AssetsDir == "" {
		c.AssetsDir = "assets"
	}

	resolve := func(p *string, def string) {
		if *p == "" {
			*p = filepath.Join(c.AssetsDir, def)
		} else if !filepath.IsAbs(*p) {
			*p = filepath.Join(c.AssetsDir, *p)
		}
	}
	resolve(&c.AtlasJSON, "atlas_map.json")
	resolve(&c.AtlasImage, "item_atlas.png")
	resolve(&c.SlotImage, "slots_background.png")
	resolve(&c.BorderImage, "container_9_slice.png")
	resolve(&c.FontJSON, "font.json")
	resolve(&c.FontImage, "ascii.png")

	if c.OutputDir == "" {
		c.OutputDir = "backpack_images"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU() + 2
	}
	if c.Format == "" {
		c.Format = "png"
	}
	if c.FetchLimit <= 0 {
		c.FetchLimit = 20
	}
}

// Default returns a fully resolved config with no file input.
func Default() Config {
	cfg := Config{FetchAvatars: true}
	cfg.Resolve(Flags{})
	return cfg
}
