package style

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T, files map[string]string, opts ...LoaderOption) *Loader {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
	loader, err := NewLoader(append([]LoaderOption{WithFs(fsys)}, opts...)...)
	require.NoError(t, err)
	return loader
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    Config
	}{
		{
			name: "all fields given",
			path: "style.config.json",
			content: `{
  "contentPaths": ["./src/**/*.svelte", "./src/**/*.html"],
  "darkMode": false,
  "themeExtensions": {},
  "variantExtensions": {},
  "plugins": []
}`,
			want: Config{
				contentPaths:      []string{"./src/**/*.svelte", "./src/**/*.html"},
				darkMode:          DarkModeDisabled,
				themeExtensions:   map[string]any{},
				variantExtensions: map[string][]string{},
				plugins:           []Plugin{},
			},
		},
		{
			name:    "optional fields default",
			path:    "style.config.json",
			content: `{"contentPaths": ["./x"], "darkMode": "media"}`,
			want: Config{
				contentPaths:      []string{"./x"},
				darkMode:          DarkModeMedia,
				themeExtensions:   map[string]any{},
				variantExtensions: map[string][]string{},
				plugins:           []Plugin{},
			},
		},
		{
			name: "null optional fields default",
			path: "style.config.json",
			content: `{"contentPaths": ["./x"], "darkMode": "class",
  "themeExtensions": null, "variantExtensions": null, "plugins": null}`,
			want: Config{
				contentPaths:      []string{"./x"},
				darkMode:          DarkModeClass,
				themeExtensions:   map[string]any{},
				variantExtensions: map[string][]string{},
				plugins:           []Plugin{},
			},
		},
		{
			name: "extensions and plugins",
			path: "style.config.json",
			content: `{
  "contentPaths": ["./src/**/*.{html,js}"],
  "darkMode": "class",
  "themeExtensions": {"colors": {"brand": "#ff0000"}, "spacing": {"128": "32rem"}},
  "variantExtensions": {"opacity": ["hover", "focus"], "backgroundColor": ["active"]},
  "plugins": ["forms", {"name": "typography", "options": {"className": "prose"}}]
}`,
			want: Config{
				contentPaths: []string{"./src/**/*.{html,js}"},
				darkMode:     DarkModeClass,
				themeExtensions: map[string]any{
					"colors":  map[string]any{"brand": "#ff0000"},
					"spacing": map[string]any{"128": "32rem"},
				},
				variantExtensions: map[string][]string{
					"opacity":         {"hover", "focus"},
					"backgroundColor": {"active"},
				},
				plugins: []Plugin{
					{Name: "forms"},
					{Name: "typography", Options: map[string]any{"className": "prose"}},
				},
			},
		},
		{
			name: "yaml document",
			path: "style.config.yaml",
			content: `contentPaths:
  - ./src/**/*.svelte
  - ./src/**/*.html
darkMode: media
variantExtensions:
  opacity: [hover]
plugins:
  - forms
`,
			want: Config{
				contentPaths:      []string{"./src/**/*.svelte", "./src/**/*.html"},
				darkMode:          DarkModeMedia,
				themeExtensions:   map[string]any{},
				variantExtensions: map[string][]string{"opacity": {"hover"}},
				plugins:           []Plugin{{Name: "forms"}},
			},
		},
		{
			name: "toml document",
			path: "style.config.toml",
			content: `contentPaths = ["./src/**/*.svelte", "./src/**/*.html"]
darkMode = false
plugins = ["forms"]

[themeExtensions.colors]
brand = "#ff0000"

[variantExtensions]
opacity = ["hover"]
`,
			want: Config{
				contentPaths:      []string{"./src/**/*.svelte", "./src/**/*.html"},
				darkMode:          DarkModeDisabled,
				themeExtensions:   map[string]any{"colors": map[string]any{"brand": "#ff0000"}},
				variantExtensions: map[string][]string{"opacity": {"hover"}},
				plugins:           []Plugin{{Name: "forms"}},
			},
		},
		{
			name: "native layout",
			path: "style.config.json",
			content: `{
  "purge": ["./src/**/*.svelte", "./src/**/*.html"],
  "darkMode": false,
  "theme": {"extend": {}},
  "variants": {"extend": {"opacity": ["disabled"]}},
  "plugins": []
}`,
			want: Config{
				contentPaths:      []string{"./src/**/*.svelte", "./src/**/*.html"},
				darkMode:          DarkModeDisabled,
				themeExtensions:   map[string]any{},
				variantExtensions: map[string][]string{"opacity": {"disabled"}},
				plugins:           []Plugin{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newTestLoader(t, map[string]string{tt.path: tt.content})

			got, err := loader.Load(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestLoader_Load_SchemaError(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		strict    bool
		wantField string
	}{
		{
			name:      "contentPaths missing",
			content:   `{"darkMode": false}`,
			strict:    true,
			wantField: "contentPaths",
		},
		{
			name:      "contentPaths null",
			content:   `{"contentPaths": null, "darkMode": false}`,
			strict:    true,
			wantField: "contentPaths",
		},
		{
			name:      "darkMode missing",
			content:   `{"contentPaths": ["./x"]}`,
			strict:    true,
			wantField: "darkMode",
		},
		{
			name:      "darkMode unknown string",
			content:   `{"contentPaths": ["./x"], "darkMode": "dark"}`,
			strict:    true,
			wantField: "darkMode",
		},
		{
			name:      "darkMode true",
			content:   `{"contentPaths": ["./x"], "darkMode": true}`,
			strict:    true,
			wantField: "darkMode",
		},
		{
			name:      "darkMode list",
			content:   `{"contentPaths": ["./x"], "darkMode": ["media", "class"]}`,
			strict:    true,
			wantField: "darkMode",
		},
		{
			name:      "contentPaths is a string",
			content:   `{"contentPaths": "./x", "darkMode": false}`,
			strict:    true,
			wantField: "contentPaths",
		},
		{
			name:      "contentPaths with a number",
			content:   `{"contentPaths": ["./x", 1], "darkMode": false}`,
			strict:    true,
			wantField: "contentPaths",
		},
		{
			name:      "contentPaths empty",
			content:   `{"contentPaths": [], "darkMode": false}`,
			strict:    true,
			wantField: "contentPaths",
		},
		{
			name:      "contentPaths with an empty pattern",
			content:   `{"contentPaths": ["./x", ""], "darkMode": false}`,
			strict:    true,
			wantField: "contentPaths[1]",
		},
		{
			name:      "contentPaths with an invalid glob",
			content:   `{"contentPaths": ["./src/[abc"], "darkMode": false}`,
			strict:    true,
			wantField: "contentPaths[0]",
		},
		{
			name:      "themeExtensions is a list",
			content:   `{"contentPaths": ["./x"], "darkMode": false, "themeExtensions": []}`,
			strict:    true,
			wantField: "themeExtensions",
		},
		{
			name:      "variantExtensions value is a string",
			content:   `{"contentPaths": ["./x"], "darkMode": false, "variantExtensions": {"opacity": "hover"}}`,
			strict:    true,
			wantField: "variantExtensions",
		},
		{
			name:      "variantExtensions with an empty variant",
			content:   `{"contentPaths": ["./x"], "darkMode": false, "variantExtensions": {"opacity": [""]}}`,
			strict:    true,
			wantField: "variantExtensions[opacity][0]",
		},
		{
			name:      "plugins is an object",
			content:   `{"contentPaths": ["./x"], "darkMode": false, "plugins": {}}`,
			strict:    true,
			wantField: "plugins",
		},
		{
			name:      "plugin is a number",
			content:   `{"contentPaths": ["./x"], "darkMode": false, "plugins": ["forms", 3]}`,
			strict:    true,
			wantField: "plugins[1]",
		},
		{
			name:      "plugin object with an unknown key",
			content:   `{"contentPaths": ["./x"], "darkMode": false, "plugins": [{"name": "forms", "version": 2}]}`,
			strict:    true,
			wantField: "plugins[0]",
		},
		{
			name:      "plugin object without a name",
			content:   `{"contentPaths": ["./x"], "darkMode": false, "plugins": [{"options": {}}]}`,
			strict:    true,
			wantField: "plugins[0].name",
		},
		{
			name:      "unknown key in strict mode",
			content:   `{"contentPaths": ["./x"], "darkMode": false, "important": true}`,
			strict:    true,
			wantField: "important",
		},
		{
			name:      "native and canonical content paths together",
			content:   `{"purge": ["./a"], "contentPaths": ["./b"], "darkMode": false}`,
			strict:    false,
			wantField: "contentPaths",
		},
		{
			name:      "purge and content together",
			content:   `{"purge": ["./a"], "content": ["./b"], "darkMode": false}`,
			strict:    false,
			wantField: "contentPaths",
		},
		{
			name:      "theme override outside extend",
			content:   `{"contentPaths": ["./x"], "darkMode": false, "theme": {"colors": {}, "extend": {}}}`,
			strict:    false,
			wantField: "theme.colors",
		},
		{
			name:      "document is a list",
			content:   `[{"contentPaths": ["./x"], "darkMode": false}]`,
			strict:    true,
			wantField: "$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newTestLoader(t, map[string]string{"style.config.json": tt.content}, WithStrict(tt.strict))

			_, err := loader.Load("style.config.json")
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.wantField, schemaErr.Field)
			assert.Contains(t, err.Error(), tt.wantField)

			var parseErr *ParseError
			assert.False(t, errors.As(err, &parseErr))
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLoader_Load_UnknownKeyAllowedWhenNotStrict(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"style.config.json": `{"contentPaths": ["./x"], "darkMode": false, "important": true}`,
	}, WithStrict(false))

	got, err := loader.Load("style.config.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"./x"}, got.ContentPaths())
}

func TestLoader_Load_ParseError(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		content    string
		wantFormat Format
	}{
		{
			name:       "unbalanced braces in json",
			path:       "style.config.json",
			content:    `{"contentPaths": ["./x"], "darkMode": false`,
			wantFormat: FormatJSON,
		},
		{
			name:       "empty json",
			path:       "style.config.json",
			content:    ``,
			wantFormat: FormatJSON,
		},
		{
			name:       "trailing data in json",
			path:       "style.config.json",
			content:    `{"contentPaths": ["./x"], "darkMode": false}}`,
			wantFormat: FormatJSON,
		},
		{
			name:       "duplicate top-level key in json",
			path:       "style.config.json",
			content:    `{"contentPaths": ["./x"], "darkMode": false, "darkMode": "media"}`,
			wantFormat: FormatJSON,
		},
		{
			name:       "duplicate nested key in json",
			path:       "style.config.json",
			content:    `{"contentPaths": ["./x"], "darkMode": false, "themeExtensions": {"a": 1, "a": 2}}`,
			wantFormat: FormatJSON,
		},
		{
			name:       "duplicate key inside a json list",
			path:       "style.config.json",
			content:    `{"contentPaths": ["./x"], "darkMode": false, "plugins": [{"name": "forms", "name": "typography"}]}`,
			wantFormat: FormatJSON,
		},
		{
			name:       "duplicate key in yaml",
			path:       "style.config.yml",
			content:    "contentPaths: [./x]\ndarkMode: false\ndarkMode: media\n",
			wantFormat: FormatYAML,
		},
		{
			name:       "unbalanced braces in yaml",
			path:       "style.config.yml",
			content:    `{contentPaths: ["./x"], darkMode: false`,
			wantFormat: FormatYAML,
		},
		{
			name:       "broken toml",
			path:       "style.config.toml",
			content:    `contentPaths = ["./x"`,
			wantFormat: FormatTOML,
		},
		{
			name:       "undeclared format",
			path:       "style.config.js",
			content:    `module.exports = {}`,
			wantFormat: FormatUnknown,
		},
		{
			name:       "missing extension",
			path:       "styleconfig",
			content:    `{"contentPaths": ["./x"], "darkMode": false}`,
			wantFormat: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newTestLoader(t, map[string]string{tt.path: tt.content})

			_, err := loader.Load(tt.path)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.path, parseErr.Path)
			assert.Equal(t, tt.wantFormat, parseErr.Format)

			var schemaErr *SchemaError
			assert.False(t, errors.As(err, &schemaErr))
		})
	}
}

func TestLoader_Load_NotFound(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"dir/other.json": `{}`})

	_, err := loader.Load("missing.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "missing.json")

	_, err = loader.Load("dir")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_OSFilesystem(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "style.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"contentPaths": ["./src/**/*.html"], "darkMode": "media"}`), 0644))

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, first, second)
	assert.Equal(t, DarkModeMedia, first.DarkMode())

	_, err = Load(filepath.Join(tmpDir, "missing.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoader_Load_SameDocumentInEveryFormat(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"style.config.json": `{"contentPaths": ["./src/**/*.html"], "darkMode": "class",
  "themeExtensions": {"colors": {"brand": "#123456"}, "zIndex": {"100": 100}, "opacity": {"15": 0.15}, "lineHeight": {"tight": 1.0}},
  "variantExtensions": {"opacity": ["hover"]},
  "plugins": ["forms", {"name": "typography", "options": {"className": "prose"}}]}`,
		"style.config.yaml": `contentPaths: ["./src/**/*.html"]
darkMode: class
themeExtensions:
  colors:
    brand: "#123456"
  zIndex:
    100: 100
  opacity:
    "15": 0.15
  lineHeight:
    tight: 1.0
variantExtensions:
  opacity: [hover]
plugins:
  - forms
  - name: typography
    options:
      className: prose
`,
		"style.config.toml": `contentPaths = ["./src/**/*.html"]
darkMode = "class"
plugins = ["forms", {name = "typography", options = {className = "prose"}}]

[themeExtensions.colors]
brand = "#123456"

[themeExtensions.zIndex]
100 = 100

[themeExtensions.opacity]
15 = 0.15

[themeExtensions.lineHeight]
tight = 1.0

[variantExtensions]
opacity = ["hover"]
`,
	})

	fromJSON, err := loader.Load("style.config.json")
	require.NoError(t, err)
	fromYAML, err := loader.Load("style.config.yaml")
	require.NoError(t, err)
	fromTOML, err := loader.Load("style.config.toml")
	require.NoError(t, err)

	assert.True(t, fromJSON.Equal(fromYAML))
	assert.True(t, fromJSON.Equal(fromTOML))
	assert.Equal(t, map[string]any{"100": int64(100)}, fromJSON.ThemeExtensions()["zIndex"])
	assert.Equal(t, map[string]any{"15": 0.15}, fromYAML.ThemeExtensions()["opacity"])
	assert.Equal(t, map[string]any{"tight": int64(1)}, fromTOML.ThemeExtensions()["lineHeight"])
}
