package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/atomicstack/menubar/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig      = "MENUBAR_CONFIG"
	envSpec        = "MENUBAR_SPEC"
	envWidgets     = "MENUBAR_WIDGETS"
	envWidget      = "MENUBAR_WIDGET"
	envScripts     = "MENUBAR_SCRIPTS"
	envWidth       = "MENUBAR_WIDTH"
	envHeight      = "MENUBAR_HEIGHT"
	envShowFooter  = "MENUBAR_FOOTER"
	envBlurDelay   = "MENUBAR_BLUR_DELAY"
	envReload      = "MENUBAR_RELOAD"
	envMetricsAddr = "MENUBAR_METRICS_ADDR"
	envTrace       = "MENUBAR_TRACE"
	envLogFile     = "MENUBAR_LOG_FILE"
)

// FileConfig is the optional TOML file. Its values sit below environment
// variables and flags.
type FileConfig struct {
	Source  FileSource  `toml:"source"`
	UI      FileUI      `toml:"ui"`
	Focus   FileFocus   `toml:"focus"`
	Reload  FileReload  `toml:"reload"`
	Metrics FileMetrics `toml:"metrics"`
	Logging FileLogging `toml:"logging"`
}

type FileSource struct {
	Spec    string `toml:"spec"`
	Widgets string `toml:"widgets"`
	Widget  string `toml:"widget"`
	Scripts string `toml:"scripts"`
}

type FileUI struct {
	Width  int  `toml:"width"`
	Height int  `toml:"height"`
	Footer bool `toml:"footer"`
}

type FileFocus struct {
	BlurDelay string `toml:"blur_delay"`
}

type FileReload struct {
	Interval string `toml:"interval"`
}

type FileMetrics struct {
	Addr string `toml:"addr"`
}

type FileLogging struct {
	File  string `toml:"file"`
	Trace bool   `toml:"trace"`
}

func defaultFile() FileConfig {
	return FileConfig{
		Source: FileSource{Widget: "menuBar"},
		UI:     FileUI{Footer: true},
		Focus:  FileFocus{BlurDelay: "10ms"},
	}
}

// ReadFile decodes the TOML file at path over the built-in defaults.
func ReadFile(path string) (FileConfig, error) {
	cfg := defaultFile()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	base := filepath.Dir(path)
	cfg.Source.Spec = resolve(base, cfg.Source.Spec)
	cfg.Source.Widgets = resolve(base, cfg.Source.Widgets)
	cfg.Source.Scripts = resolve(base, cfg.Source.Scripts)
	return cfg, nil
}

// resolve makes a path from the config file relative to the file itself.
func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath := scanConfigFlag(args)
	if configPath == "" {
		configPath = env[envConfig]
	}
	file, err := ReadFile(configPath)
	if err != nil {
		return Config{}, err
	}
	blurDefault, err := time.ParseDuration(file.Focus.BlurDelay)
	if err != nil {
		return Config{}, fmt.Errorf("config focus.blur_delay: %w", err)
	}
	var reloadDefault time.Duration
	if file.Reload.Interval != "" {
		if reloadDefault, err = time.ParseDuration(file.Reload.Interval); err != nil {
			return Config{}, fmt.Errorf("config reload.interval: %w", err)
		}
	}

	fs := flag.NewFlagSet("menubar", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", configPath, "path to a TOML config file")
	spec := fs.String("spec", envOrDefault(env, envSpec, file.Source.Spec), "path to a menu bar spec (.json, .yaml); empty uses the built-in demo")
	widgets := fs.String("widgets", envOrDefault(env, envWidgets, file.Source.Widgets), "directory of widget configurations loaded by name")
	widget := fs.String("widget", envOrDefault(env, envWidget, file.Source.Widget), "widget configuration to load from -widgets")
	scripts := fs.String("scripts", envOrDefault(env, envScripts, file.Source.Scripts), "Lua file providing menu callbacks")
	width := fs.Int("width", envOrInt(env, envWidth, file.UI.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, file.UI.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, file.UI.Footer), "show the key hint footer")
	blurDelay := fs.Duration("blur-delay", envOrDuration(env, envBlurDelay, blurDefault), "delay before checking where focus went after a blur")
	reload := fs.Duration("reload", envOrDuration(env, envReload, reloadDefault), "poll the -spec file for changes at this interval (0 disables)")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, file.Metrics.Addr), "serve Prometheus metrics on this address")
	dump := fs.Bool("dump", false, "print the bar markup and exit")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Logging.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.Logging.File), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *blurDelay < 0 {
		return Config{}, fmt.Errorf("blur-delay must be >= 0 (got %s)", *blurDelay)
	}
	if *reload < 0 {
		return Config{}, fmt.Errorf("reload must be >= 0 (got %s)", *reload)
	}

	cfg := Config{
		App: app.Config{
			SpecPath:       *spec,
			WidgetDir:      *widgets,
			Widget:         *widget,
			ScriptPath:     *scripts,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			BlurDelay:      *blurDelay,
			ReloadInterval: *reload,
			MetricsAddr:    *metricsAddr,
			Dump:           *dump,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: configPath,
		Flags: map[string]string{
			"config":      configPath,
			"spec":        *spec,
			"widgets":     *widgets,
			"widget":      *widget,
			"scripts":     *scripts,
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"blurDelay":   blurDelay.String(),
			"reload":      reload.String(),
			"metricsAddr": *metricsAddr,
			"dump":        strconv.FormatBool(*dump),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// scanConfigFlag finds -config ahead of the real parse so the file can
// supply flag defaults.
func scanConfigFlag(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects combinations the application cannot honour.
func Validate(cfg Config) error {
	a := cfg.App
	if a.SpecPath != "" && a.WidgetDir != "" {
		return fmt.Errorf("-spec and -widgets are mutually exclusive")
	}
	if a.WidgetDir != "" && strings.TrimSpace(a.Widget) == "" {
		return fmt.Errorf("-widget is required with -widgets")
	}
	if a.ReloadInterval > 0 && a.SpecPath == "" {
		return fmt.Errorf("-reload needs -spec")
	}
	if a.ScriptPath != "" && !strings.EqualFold(filepath.Ext(a.ScriptPath), ".lua") {
		return fmt.Errorf("-scripts must be a .lua file (got %s)", a.ScriptPath)
	}
	return nil
}
