// Package config loads demoshell settings from a YAML file with
// DEMOSHELL_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caffeineduck/demoshell/dispatch"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: DEMOSHELL_MODULE__NAMESPACE sets module.namespace.
const EnvPrefix = "DEMOSHELL_"

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "demoshell.yaml"

// Config is the full demoshell configuration.
type Config struct {
	Port         int            `koanf:"port"`
	AssetsDir    string         `koanf:"assets_dir"`
	Dispatcher   string         `koanf:"dispatcher"`
	WasmExec     string         `koanf:"wasm_exec"`
	Title        string         `koanf:"title"`
	// CanvasID is the canvas the dispatcher sizes and shows. The external
	// demos look their canvas up by the fixed id "canvas", so any other
	// value only works with a module built to match.
	CanvasID     string         `koanf:"canvas_id"`
	LinksID      string         `koanf:"links_id"`
	CORSAllowAll bool           `koanf:"cors_allow_all"`
	CacheDir     string         `koanf:"cache_dir"`
	NoCache      bool           `koanf:"no_cache"`
	Module       ModuleConfig   `koanf:"module"`
	Demos        dispatch.Table `koanf:"demos"`
}

// ModuleConfig locates the external demo module. Paths are relative to
// the assets directory.
type ModuleConfig struct {
	Script    string `koanf:"script"`
	Binary    string `koanf:"binary"`
	Namespace string `koanf:"namespace"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Port:       8080,
		AssetsDir:  "web/static",
		Dispatcher: "dispatch.wasm",
		WasmExec:   "wasm_exec.js",
		Title:      "wasm sandbox",
		CanvasID:   dispatch.DefaultCanvasID,
		LinksID:    dispatch.DefaultLinksID,
		Module: ModuleConfig{
			Script:    "pkg/wasm_sandbox.js",
			Binary:    "pkg/wasm_sandbox_bg.wasm",
			Namespace: dispatch.DefaultNamespace,
		},
		Demos: dispatch.DefaultTable(),
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// A configured demo list replaces the default one instead of being
	// merged into it row by row.
	if k.Exists("demos") {
		cfg.Demos = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.AssetsDir == "" {
		return errors.New("assets_dir is required")
	}
	if c.Dispatcher == "" {
		return errors.New("dispatcher is required")
	}
	if c.CanvasID == "" || c.LinksID == "" {
		return errors.New("canvas_id and links_id are required")
	}
	if c.CanvasID == c.LinksID {
		return fmt.Errorf("canvas_id and links_id must differ, both are %q", c.CanvasID)
	}
	if c.Module.Script == "" {
		return errors.New("module.script is required")
	}
	if c.Module.Namespace == "" {
		return errors.New("module.namespace is required")
	}
	if err := c.Demos.Validate(); err != nil {
		return fmt.Errorf("demos: %w", err)
	}
	return nil
}

// ModulePath returns the on-disk location of the demo module binary, or ""
// when none is configured.
func (c *Config) ModulePath() string {
	if c.Module.Binary == "" {
		return ""
	}
	return filepath.Join(c.AssetsDir, c.Module.Binary)
}

// PageConfig returns what the served page hands to the dispatcher.
func (c *Config) PageConfig() dispatch.PageConfig {
	return dispatch.PageConfig{
		CanvasID:  c.CanvasID,
		LinksID:   c.LinksID,
		Namespace: c.Module.Namespace,
		Demos:     c.Demos,
	}
}
