package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest_JSON(t *testing.T) {
	data := []byte(`{"region": "asia", "flags": ["as-Japan", "as-Korea", "as-Japan"]}`)

	c, err := ParseManifest(data, FormatJSON, "test")
	require.NoError(t, err)

	assert.Equal(t, "asia", c.Region())
	assert.Equal(t, []string{"as-Japan", "as-Korea"}, c.IDs())
}

func TestParseManifest_YAML(t *testing.T) {
	data := []byte("region: africa\nflags:\n  - af-Chad\n  - af-Mali\n")

	c, err := ParseManifest(data, FormatYAML, "test")
	require.NoError(t, err)

	assert.Equal(t, "africa", c.Region())
	assert.Equal(t, []string{"Chad", "Mali"}, c.Countries())
}

func TestParseManifest_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing region", `{"flags": ["as-Japan"]}`},
		{"missing flags", `{"region": "asia"}`},
		{"flag without delimiter", `{"region": "asia", "flags": ["Japan"]}`},
		{"flags not strings", `{"region": "asia", "flags": [1, 2]}`},
		{"region with slash", `{"region": "../etc", "flags": ["as-Japan"]}`},
		{"unknown field", `{"region": "asia", "flags": [], "extra": true}`},
		{"not JSON", `{region`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data), FormatJSON, "test")
			require.Error(t, err)

			var mErr *ManifestError
			assert.True(t, errors.As(err, &mErr), "want *ManifestError, got %T", err)
		})
	}
}

func TestParseManifest_UnsupportedFormat(t *testing.T) {
	_, err := ParseManifest([]byte(`{}`), Format("toml"), "test")
	var mErr *ManifestError
	require.ErrorAs(t, err, &mErr)
}

func TestLoadManifestFile_ChoosesFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "flags.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("region: asia\nflags: [as-Oman, as-Peru]\n"), 0o644))

	c, err := LoadManifestFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadManifestFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestBuiltin(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	assert.Equal(t, "asia", c.Region())
	assert.GreaterOrEqual(t, c.Len(), 10)
	assert.GreaterOrEqual(t, len(c.Countries()), 3)
}
