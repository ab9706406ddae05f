// Package testutil provides shared test helpers for creating settings files and style config fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to name under dir, creating parent directories, and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// SetupTestConfig creates a settings file pointing at the given style document.
// Returns the path to the generated settings file.
func SetupTestConfig(t *testing.T, tmpDir string, stylePath string) string {
	t.Helper()

	configContent := fmt.Sprintf(`style_config: %s
strict: true
output:
  format: text
`, stylePath)
	return WriteFile(t, tmpDir, "settings.yml", configContent)
}

// StyleConfigOption configures optional fields when creating a style config fixture.
type StyleConfigOption func(map[string]any)

// WithDarkMode sets darkMode to false, "media" or "class" (or any invalid value).
func WithDarkMode(mode any) StyleConfigOption {
	return func(doc map[string]any) {
		doc["darkMode"] = mode
	}
}

func WithPlugins(names ...string) StyleConfigOption {
	return func(doc map[string]any) {
		doc["plugins"] = names
	}
}

// CreateStyleConfig writes a JSON style document with the given content paths.
// By default darkMode is false and the optional fields are omitted.
func CreateStyleConfig(t *testing.T, dir, name string, contentPaths []string, opts ...StyleConfigOption) string {
	t.Helper()

	doc := map[string]any{
		"contentPaths": contentPaths,
		"darkMode":     false,
	}
	for _, opt := range opts {
		opt(doc)
	}
	content, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	return WriteFile(t, dir, name, string(content))
}
