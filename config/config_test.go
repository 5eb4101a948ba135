package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caffeineduck/demoshell/dispatch"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demoshell.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
	if len(cfg.Demos) != len(dispatch.DefaultTable()) {
		t.Errorf("expected default demos, got %+v", cfg.Demos)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
port: 9000
assets_dir: /srv/demos
module:
  namespace: sandbox
demos:
  - flag: life
    entry: game_of_life
    title: Life
  - flag: tracer
    entry: tracer
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9000 || cfg.AssetsDir != "/srv/demos" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Module.Namespace != "sandbox" {
		t.Errorf("expected namespace sandbox, got %q", cfg.Module.Namespace)
	}
	if cfg.Module.Script != DefaultConfig().Module.Script {
		t.Errorf("unset module.script should keep its default, got %q", cfg.Module.Script)
	}
	if len(cfg.Demos) != 2 {
		t.Fatalf("configured demos should replace defaults, got %+v", cfg.Demos)
	}
	if cfg.Demos[0].Flag != "life" || cfg.Demos[0].Title != "Life" || cfg.Demos[1].Title != "" {
		t.Errorf("unexpected demos %+v", cfg.Demos)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "port: 9000\n")
	t.Setenv("DEMOSHELL_PORT", "9100")
	t.Setenv("DEMOSHELL_MODULE__NAMESPACE", "wasm")
	t.Setenv("DEMOSHELL_CORS_ALLOW_ALL", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("env should override file port, got %d", cfg.Port)
	}
	if cfg.Module.Namespace != "wasm" {
		t.Errorf("expected namespace from env, got %q", cfg.Module.Namespace)
	}
	if !cfg.CORSAllowAll {
		t.Error("expected cors_allow_all from env")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "port: [\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Port = 70000 }, "out of range"},
		{"assets", func(c *Config) { c.AssetsDir = "" }, "assets_dir"},
		{"dispatcher", func(c *Config) { c.Dispatcher = "" }, "dispatcher"},
		{"same ids", func(c *Config) { c.LinksID = c.CanvasID }, "must differ"},
		{"script", func(c *Config) { c.Module.Script = "" }, "module.script"},
		{"namespace", func(c *Config) { c.Module.Namespace = "" }, "module.namespace"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Demos = cfg.Demos.Append(dispatch.Demo{Flag: "3d", Entry: "again"})
	if err := cfg.Validate(); !errors.Is(err, dispatch.ErrDuplicateFlag) {
		t.Errorf("expected ErrDuplicateFlag, got %v", err)
	}
}

func TestModulePathAndPageConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AssetsDir = "/srv"

	if got := cfg.ModulePath(); got != filepath.Join("/srv", "pkg", "wasm_sandbox_bg.wasm") {
		t.Errorf("unexpected module path %q", got)
	}
	cfg.Module.Binary = ""
	if got := cfg.ModulePath(); got != "" {
		t.Errorf("expected empty module path, got %q", got)
	}

	pc := cfg.PageConfig()
	if pc.CanvasID != "canvas" || pc.Namespace != "demos" || len(pc.Demos) != 4 {
		t.Errorf("unexpected page config %+v", pc)
	}
}
