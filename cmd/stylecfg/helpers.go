package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/stylecfg/internal/config"
	"github.com/at-ishikawa/stylecfg/internal/style"
	"github.com/fatih/color"
)

func loadSettings() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	settings, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return settings, nil
}

// stylePath returns the document path given on the command line, or the configured one.
func stylePath(args []string, settings *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return settings.StyleConfig
}

func loadStyleConfig(args []string) (style.Config, string, *config.Config, error) {
	settings, err := loadSettings()
	if err != nil {
		return style.Config{}, "", nil, err
	}
	path := stylePath(args, settings)

	loader, err := style.NewLoader(style.WithStrict(settings.Strict))
	if err != nil {
		return style.Config{}, path, settings, fmt.Errorf("style.NewLoader() > %w", err)
	}
	cfg, err := loader.Load(path)
	if err != nil {
		return style.Config{}, path, settings, err
	}
	return cfg, path, settings, nil
}

// describeError names the kind of a load error and, for schema errors, the field.
func describeError(err error) string {
	var parseErr *style.ParseError
	var schemaErr *style.SchemaError
	switch {
	case errors.Is(err, style.ErrNotFound):
		return fmt.Sprintf("not found: %v", err)
	case errors.As(err, &parseErr):
		return fmt.Sprintf("parse error (%s): %v", parseErr.Format, parseErr.Err)
	case errors.As(err, &schemaErr):
		return fmt.Sprintf("schema error (%s): %s", schemaErr.Field, schemaErr.Reason)
	default:
		return err.Error()
	}
}

func displaySummary(w io.Writer, path string, cfg style.Config) {
	green := color.New(color.FgGreen)
	bold := color.New(color.Bold)

	green.Fprintf(w, "✓ %s is valid\n", path)
	bold.Fprintf(w, "Content paths (%d):\n", len(cfg.ContentPaths()))
	for _, p := range cfg.ContentPaths() {
		fmt.Fprintf(w, "  - %s\n", p)
	}
	fmt.Fprintf(w, "Dark mode: %s\n", cfg.DarkMode())
	fmt.Fprintf(w, "Theme extensions: %d\n", len(cfg.ThemeExtensions()))
	fmt.Fprintf(w, "Variant extensions: %d\n", len(cfg.VariantExtensions()))
	plugins := cfg.Plugins()
	fmt.Fprintf(w, "Plugins: %d\n", len(plugins))
	for _, p := range plugins {
		fmt.Fprintf(w, "  - %s\n", p.Name)
	}
}
