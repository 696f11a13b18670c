package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/menubar/internal/app"
	"github.com/atomicstack/menubar/internal/config"
	"github.com/atomicstack/menubar/internal/logging"
	"github.com/atomicstack/menubar/internal/logging/events"
)

var errNoTerminal = errors.New("stdin and stdout must be a terminal (use -dump for non-interactive output)")

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	tty := probeTerminal()
	events.App.Start(startupPayload(cfg, tty))

	if err := run(cfg.App, tty, os.Stdout); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dumps the bar's markup or starts the interactive program, which
// needs a terminal on both ends.
func run(cfg app.Config, tty terminal, out io.Writer) error {
	if cfg.Dump {
		return app.Dump(cfg, out)
	}
	if !tty.interactive() {
		return errNoTerminal
	}
	return app.Run(cfg)
}

type terminal struct {
	Stdin  bool `json:"stdin"`
	Stdout bool `json:"stdout"`
	Width  int  `json:"width,omitempty"`
	Height int  `json:"height,omitempty"`
}

func (t terminal) interactive() bool {
	return t.Stdin && t.Stdout
}

func probeTerminal() terminal {
	t := terminal{
		Stdin:  term.IsTerminal(int(os.Stdin.Fd())),
		Stdout: term.IsTerminal(int(os.Stdout.Fd())),
	}
	if t.Stdout {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			t.Width, t.Height = w, h
		}
	}
	return t
}

// barSource describes where the bar will be loaded from.
func barSource(a app.Config) string {
	switch {
	case a.SpecPath != "":
		return "spec:" + a.SpecPath
	case a.WidgetDir != "":
		return fmt.Sprintf("widgets:%s/%s", a.WidgetDir, a.Widget)
	default:
		name := a.Widget
		if name == "" {
			name = app.DefaultWidget
		}
		return "bundled:" + name
	}
}

func startupPayload(cfg config.Config, tty terminal) map[string]interface{} {
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    cfg.Flags,
		"source":   barSource(cfg.App),
		"terminal": tty,
		"mode":     "interactive",
	}
	if cfg.App.Dump {
		payload["mode"] = "dump"
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if cfg.App.ScriptPath != "" {
		payload["scripts"] = cfg.App.ScriptPath
	}
	return payload
}
