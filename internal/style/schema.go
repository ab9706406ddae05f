package style

import (
	"fmt"
	"slices"

	"github.com/go-viper/mapstructure/v2"
)

const (
	keyContentPaths      = "contentPaths"
	keyDarkMode          = "darkMode"
	keyThemeExtensions   = "themeExtensions"
	keyVariantExtensions = "variantExtensions"
	keyPlugins           = "plugins"
)

// document is the typed shape of a style config before it is frozen into a Config.
type document struct {
	ContentPaths      []string            `mapstructure:"contentPaths" validate:"min=1,dive,required,glob"`
	DarkMode          DarkMode            `mapstructure:"darkMode"`
	ThemeExtensions   map[string]any      `mapstructure:"themeExtensions"`
	VariantExtensions map[string][]string `mapstructure:"variantExtensions" validate:"dive,keys,required,endkeys,dive,required"`
	Plugins           []Plugin            `mapstructure:"plugins" validate:"dive"`
}

// legacyAliases maps the keys of the framework's native layout to canonical keys.
var legacyAliases = []struct {
	alias     string
	canonical string
	extend    bool
}{
	{alias: "purge", canonical: keyContentPaths},
	{alias: "content", canonical: keyContentPaths},
	{alias: "theme", canonical: keyThemeExtensions, extend: true},
	{alias: "variants", canonical: keyVariantExtensions, extend: true},
}

// normalizeLegacy rewrites native-layout keys to their canonical names. raw is not
// modified.
func normalizeLegacy(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	moved := make(map[string]string)
	for _, a := range legacyAliases {
		value, ok := out[a.alias]
		if !ok {
			continue
		}
		if _, exists := out[a.canonical]; exists {
			source := a.canonical
			if from, ok := moved[a.canonical]; ok {
				source = from
			}
			return nil, schemaErrorf(a.canonical, "%s is specified more than once (%s and %s)", a.canonical, source, a.alias)
		}
		delete(out, a.alias)
		if a.extend {
			extension, err := extractExtend(a.alias, value)
			if err != nil {
				return nil, err
			}
			value = extension
		}
		out[a.canonical] = value
		moved[a.canonical] = a.alias
	}
	return out, nil
}

// extractExtend returns the `extend` member of a native `theme` or `variants` object.
func extractExtend(alias string, value any) (any, error) {
	object, ok := value.(map[string]any)
	if !ok {
		return nil, schemaErrorf(alias, "%s must be an object", alias)
	}
	for _, k := range sortedKeys(object) {
		if k != "extend" {
			field := alias + "." + k
			return nil, schemaErrorf(field, "%s is not supported, only %s.extend is", field, alias)
		}
	}
	extension, ok := object["extend"]
	if !ok {
		return map[string]any{}, nil
	}
	return extension, nil
}

// buildDocument checks presence and types of every field of raw and decodes it.
// Value constraints such as glob validity are checked afterwards by the validator.
func buildDocument(raw map[string]any, strict bool) (document, error) {
	var doc document

	value, ok := raw[keyContentPaths]
	if !ok || value == nil {
		return document{}, schemaErrorf(keyContentPaths, "%s is required", keyContentPaths)
	}
	if err := decodeField(keyContentPaths, value, &doc.ContentPaths, "a list of glob strings"); err != nil {
		return document{}, err
	}

	value, ok = raw[keyDarkMode]
	if !ok || value == nil {
		return document{}, schemaErrorf(keyDarkMode, "%s is required", keyDarkMode)
	}
	mode, err := parseDarkMode(value)
	if err != nil {
		return document{}, err
	}
	doc.DarkMode = mode

	doc.ThemeExtensions = map[string]any{}
	if value, ok := raw[keyThemeExtensions]; ok && value != nil {
		if err := decodeField(keyThemeExtensions, value, &doc.ThemeExtensions, "an object"); err != nil {
			return document{}, err
		}
	}

	doc.VariantExtensions = map[string][]string{}
	if value, ok := raw[keyVariantExtensions]; ok && value != nil {
		if err := decodeField(keyVariantExtensions, value, &doc.VariantExtensions, "an object of variant name lists"); err != nil {
			return document{}, err
		}
	}

	doc.Plugins = []Plugin{}
	if value, ok := raw[keyPlugins]; ok && value != nil {
		plugins, err := parsePlugins(value)
		if err != nil {
			return document{}, err
		}
		doc.Plugins = plugins
	}

	if strict {
		known := []string{keyContentPaths, keyDarkMode, keyThemeExtensions, keyVariantExtensions, keyPlugins}
		for _, k := range sortedKeys(raw) {
			if !slices.Contains(known, k) {
				return document{}, schemaErrorf(k, "%s is not a known field", k)
			}
		}
	}
	return doc, nil
}

func parseDarkMode(value any) (DarkMode, error) {
	switch v := value.(type) {
	case bool:
		if !v {
			return DarkModeDisabled, nil
		}
	case string:
		switch v {
		case "media":
			return DarkModeMedia, nil
		case "class":
			return DarkModeClass, nil
		}
	}
	return DarkModeDisabled, schemaErrorf(keyDarkMode, `%s must be one of false, "media" or "class", got %v`, keyDarkMode, value)
}

func parsePlugins(value any) ([]Plugin, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, schemaErrorf(keyPlugins, "%s must be a list", keyPlugins)
	}
	plugins := make([]Plugin, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", keyPlugins, i)
		switch v := item.(type) {
		case string:
			plugins = append(plugins, Plugin{Name: v})
		case map[string]any:
			var p Plugin
			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:      &p,
				ErrorUnused: true,
			})
			if err != nil {
				return nil, fmt.Errorf("mapstructure.NewDecoder() > %w", err)
			}
			if err := decoder.Decode(v); err != nil {
				return nil, schemaErrorf(field, "%s must be a plugin name or an object with name and options: %v", field, err)
			}
			plugins = append(plugins, p)
		default:
			return nil, schemaErrorf(field, "%s must be a plugin name or an object with name and options", field)
		}
	}
	return plugins, nil
}

func decodeField(field string, value any, target any, want string) error {
	if err := mapstructure.Decode(value, target); err != nil {
		return schemaErrorf(field, "%s must be %s: %v", field, want, err)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
