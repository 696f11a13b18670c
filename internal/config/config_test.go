package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Widget != "menuBar" {
		t.Fatalf("expected default widget menuBar, got %q", cfg.App.Widget)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer on by default")
	}
	if cfg.App.BlurDelay != 10*time.Millisecond {
		t.Fatalf("expected 10ms blur delay, got %s", cfg.App.BlurDelay)
	}
	if cfg.App.ReloadInterval != 0 || cfg.App.Dump {
		t.Fatalf("expected reload and dump off by default")
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"MENUBAR_WIDTH=90",
		"MENUBAR_HEIGHT=30",
		"MENUBAR_TRACE=true",
		"MENUBAR_SPEC=/env/spec.yaml",
		"MENUBAR_BLUR_DELAY=25ms",
		"MENUBAR_FOOTER=not-a-bool",
	}
	cfg, err := LoadArgs([]string{"-width", "100", "-spec", "bar.json", "-dump"}, env)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Width != 100 || cfg.App.Height != 30 {
		t.Fatalf("expected width 100 height 30, got %d/%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.SpecPath != "bar.json" {
		t.Fatalf("expected flag spec path, got %q", cfg.App.SpecPath)
	}
	if !cfg.Logging.Trace || !cfg.App.Dump {
		t.Fatalf("expected trace from env and dump from flag")
	}
	if cfg.App.BlurDelay != 25*time.Millisecond {
		t.Fatalf("expected blur delay from env, got %s", cfg.App.BlurDelay)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected invalid env bool to fall back to default")
	}
	if cfg.Flags["width"] != "100" || cfg.Flags["blurDelay"] != "25ms" {
		t.Fatalf("unexpected flag snapshot %v", cfg.Flags)
	}
}

func TestConfigFileSuppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menubar.toml")
	data := `
[source]
spec = "bars/demo.yaml"
scripts = "/abs/actions.lua"

[ui]
width = 72
footer = false

[focus]
blur_delay = "40ms"

[reload]
interval = "2s"

[metrics]
addr = "127.0.0.1:9100"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadArgs([]string{"--config=" + path, "-height", "20"}, []string{"MENUBAR_WIDTH=80"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.SpecPath != filepath.Join(dir, "bars", "demo.yaml") {
		t.Fatalf("expected spec resolved against config dir, got %q", cfg.App.SpecPath)
	}
	if cfg.App.ScriptPath != "/abs/actions.lua" {
		t.Fatalf("expected absolute script path kept, got %q", cfg.App.ScriptPath)
	}
	if cfg.App.Width != 80 || cfg.App.Height != 20 {
		t.Fatalf("expected env width and flag height, got %d/%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.ShowFooter {
		t.Fatalf("expected footer disabled by file")
	}
	if cfg.App.BlurDelay != 40*time.Millisecond || cfg.App.ReloadInterval != 2*time.Second {
		t.Fatalf("unexpected durations %s/%s", cfg.App.BlurDelay, cfg.App.ReloadInterval)
	}
	if cfg.App.MetricsAddr != "127.0.0.1:9100" || cfg.File != path {
		t.Fatalf("unexpected metrics addr %q or file %q", cfg.App.MetricsAddr, cfg.File)
	}

	viaEnv, err := LoadArgs(nil, []string{"MENUBAR_CONFIG=" + path})
	if err != nil {
		t.Fatalf("load via env failed: %v", err)
	}
	if viaEnv.App.Width != 72 {
		t.Fatalf("expected file width via MENUBAR_CONFIG, got %d", viaEnv.App.Width)
	}
}

func TestLoadArgsRejectsBadInput(t *testing.T) {
	cases := [][]string{
		{"-width", "-1"},
		{"-height", "-4"},
		{"-blur-delay", "-1s"},
		{"-reload", "-1s"},
		{"-unknown"},
		{"-config", filepath.Join(t.TempDir(), "missing.toml")},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[focus]\nblur_delay = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := LoadArgs([]string{"-config", bad}, nil); err == nil {
		t.Fatalf("expected invalid duration in file to fail")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := Validate(base); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}

	cases := map[string]func(*Config){
		"spec and widgets": func(c *Config) { c.App.SpecPath = "a.yaml"; c.App.WidgetDir = "w" },
		"widgets no name":  func(c *Config) { c.App.WidgetDir = "w"; c.App.Widget = " " },
		"reload no spec":   func(c *Config) { c.App.ReloadInterval = time.Second },
		"script ext":       func(c *Config) { c.App.ScriptPath = "actions.py" },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestScanConfigFlag(t *testing.T) {
	cases := map[string][]string{
		"a.toml": {"-config", "a.toml"},
		"b.toml": {"-width", "3", "--config=b.toml"},
		"":       {"--", "-config", "c.toml"},
	}
	for want, args := range cases {
		if got := scanConfigFlag(args); got != want {
			t.Fatalf("%v: expected %q, got %q", args, want, got)
		}
	}
}
