package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedPreset_GruvboxDark(t *testing.T) {
	data, found := GetEmbeddedPreset("gruvbox-dark")
	require.True(t, found, "gruvbox-dark should be bundled")
	assert.Contains(t, string(data), "palette:")
	assert.Contains(t, string(data), `base00: "#282828"`)
}

func TestGetEmbeddedPreset_NotFound(t *testing.T) {
	tests := []string{"nonexistent", "", "../presets/nord", "presets/nord"}
	for _, name := range tests {
		data, found := GetEmbeddedPreset(name)
		assert.False(t, found, name)
		assert.Nil(t, data, name)
	}
}

func TestListEmbeddedPresets(t *testing.T) {
	names := ListEmbeddedPresets()

	assert.GreaterOrEqual(t, len(names), 5)
	assert.Contains(t, names, "gruvbox-dark")
	assert.Contains(t, names, "solarized-dark")
	assert.Contains(t, names, "solarized-light")
	assert.Contains(t, names, "nord")
	assert.True(t, IsEmbeddedPreset("nord"))
}

func TestEmbeddedPresets_AllParse(t *testing.T) {
	for _, name := range ListEmbeddedPresets() {
		t.Run(name, func(t *testing.T) {
			data, found := GetEmbeddedPreset(name)
			require.True(t, found)

			th, err := Parse(data)
			require.NoError(t, err)
			assert.NoError(t, th.Palette.Validate(), "bundled presets must have valid colors")
			assert.NotEmpty(t, th.Name)
		})
	}
}
