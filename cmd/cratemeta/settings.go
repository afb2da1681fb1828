package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/simonhull/cratemeta"
	"github.com/simonhull/cratemeta/internal/config"
)

// loadSettings reads the config file and applies flag overrides on top.
// An empty path uses config.DefaultPath.
func loadSettings(path string, flags config.Config) (*config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err == nil {
			path = p
		}
	}

	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Merge(flags)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return cfg, nil
}

// libraryOptions turns settings into library options with a stderr logger.
func libraryOptions(cfg *config.Config, strict bool) []cratemeta.Option {
	level, _ := cfg.Level() // validated by loadSettings
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []cratemeta.Option{
		cratemeta.WithLogger(logger),
		cratemeta.WithConcurrency(cfg.Concurrency),
	}
	if strict {
		opts = append(opts, cratemeta.WithStrictParsing())
	}
	return opts
}

// setupColor enables color when forced, or when w is a terminal and color
// was not disabled.
func setupColor(w io.Writer, force, disable bool) {
	switch {
	case disable:
		color.NoColor = true
	case force:
		color.NoColor = false
	default:
		f, ok := w.(*os.File)
		color.NoColor = !ok || !isatty.IsTerminal(f.Fd())
	}
}

var (
	folderColor   = color.RGB(74, 92, 138).SprintfFunc()
	playlistColor = color.CyanString
	countColor    = color.BlueString
	warnColor     = color.YellowString
	failColor     = color.RGB(196, 96, 16).SprintfFunc()
)

// writeYAML encodes v as one YAML document.
func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func writeWarnings(w io.Writer, warnings []cratemeta.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "  %s %s\n", warnColor("warning:"), warn)
	}
}
