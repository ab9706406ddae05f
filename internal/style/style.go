// Package style loads and validates the build-time configuration document of a
// utility-class CSS pipeline.
//
// A document names the content globs to scan, the dark-mode strategy, theme and
// variant extensions, and the plugins to enable. Load turns one such document into an
// immutable Config or returns one of ErrNotFound, *ParseError or *SchemaError.
package style

import (
	"maps"
	"reflect"
	"slices"
)

// DarkMode is the dark-mode strategy of the pipeline.
type DarkMode int

const (
	// DarkModeDisabled is written as `false` in a document.
	DarkModeDisabled DarkMode = iota
	// DarkModeMedia is written as "media" and follows prefers-color-scheme.
	DarkModeMedia
	// DarkModeClass is written as "class" and follows a class on an ancestor element.
	DarkModeClass
)

func (m DarkMode) String() string {
	switch m {
	case DarkModeMedia:
		return "media"
	case DarkModeClass:
		return "class"
	default:
		return "false"
	}
}

// documentValue is the value written back into a document.
func (m DarkMode) documentValue() any {
	if m == DarkModeDisabled {
		return false
	}
	return m.String()
}

// Plugin is a reference to a plugin of the external pipeline.
type Plugin struct {
	Name    string         `mapstructure:"name" validate:"required"`
	Options map[string]any `mapstructure:"options"`
}

// Config is a validated style configuration. The zero value is not valid; obtain one
// from Load, Loader.Load or Default. Accessors return copies, so a Config never
// changes after construction.
type Config struct {
	contentPaths      []string
	darkMode          DarkMode
	themeExtensions   map[string]any
	variantExtensions map[string][]string
	plugins           []Plugin
}

// Default returns the configuration written by `stylecfg init`.
func Default() Config {
	return newConfig(document{
		ContentPaths: []string{"./src/**/*.svelte", "./src/**/*.html"},
		DarkMode:     DarkModeDisabled,
	})
}

func newConfig(doc document) Config {
	cfg := Config{
		contentPaths:      slices.Clone(doc.ContentPaths),
		darkMode:          doc.DarkMode,
		themeExtensions:   cloneMap(doc.ThemeExtensions),
		variantExtensions: make(map[string][]string, len(doc.VariantExtensions)),
		plugins:           make([]Plugin, 0, len(doc.Plugins)),
	}
	for category, variants := range doc.VariantExtensions {
		cfg.variantExtensions[category] = slices.Clone(variants)
	}
	for _, p := range doc.Plugins {
		cfg.plugins = append(cfg.plugins, p.clone())
	}
	return cfg
}

// ContentPaths returns the glob patterns of the source files to scan, in document order.
func (c Config) ContentPaths() []string {
	return slices.Clone(c.contentPaths)
}

func (c Config) DarkMode() DarkMode {
	return c.darkMode
}

// ThemeExtensions returns a deep copy of the theme overrides.
func (c Config) ThemeExtensions() map[string]any {
	return cloneMap(c.themeExtensions)
}

// VariantExtensions returns the enabled variants per utility category.
func (c Config) VariantExtensions() map[string][]string {
	out := make(map[string][]string, len(c.variantExtensions))
	for category, variants := range c.variantExtensions {
		out[category] = slices.Clone(variants)
	}
	return out
}

func (c Config) Plugins() []Plugin {
	out := make([]Plugin, 0, len(c.plugins))
	for _, p := range c.plugins {
		out = append(out, p.clone())
	}
	return out
}

// Equal reports whether both configs hold the same values.
func (c Config) Equal(other Config) bool {
	return slices.Equal(c.contentPaths, other.contentPaths) &&
		c.darkMode == other.darkMode &&
		reflect.DeepEqual(c.themeExtensions, other.themeExtensions) &&
		maps.EqualFunc(c.variantExtensions, other.variantExtensions, slices.Equal[[]string]) &&
		slices.EqualFunc(c.plugins, other.plugins, func(a, b Plugin) bool {
			return a.Name == b.Name && reflect.DeepEqual(a.Options, b.Options)
		})
}

// Document returns the config in document shape with every default filled in.
// Encoding the result in any supported format yields a document that loads back into
// an equal Config.
func (c Config) Document() map[string]any {
	plugins := make([]any, 0, len(c.plugins))
	for _, p := range c.plugins {
		if p.Options == nil {
			plugins = append(plugins, p.Name)
			continue
		}
		plugins = append(plugins, map[string]any{
			"name":    p.Name,
			"options": cloneMap(p.Options),
		})
	}
	return map[string]any{
		keyContentPaths:      c.ContentPaths(),
		keyDarkMode:          c.darkMode.documentValue(),
		keyThemeExtensions:   c.ThemeExtensions(),
		keyVariantExtensions: c.VariantExtensions(),
		keyPlugins:           plugins,
	}
}

func (p Plugin) clone() Plugin {
	if p.Options == nil {
		return Plugin{Name: p.Name}
	}
	return Plugin{Name: p.Name, Options: cloneMap(p.Options)}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
