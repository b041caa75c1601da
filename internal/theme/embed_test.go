package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedTheme_Bundled(t *testing.T) {
	for _, name := range BundledThemes {
		t.Run(name, func(t *testing.T) {
			data, found := GetEmbeddedTheme(name)
			require.True(t, found, "%s palette should be found", name)
			assert.Contains(t, data, "background")
			assert.Contains(t, data, "fill_alpha")

			p, err := ParsePalette(name, data)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name)
			assert.InDelta(t, 0.8, p.FillAlpha, 1e-9)
		})
	}
}

func TestGetEmbeddedTheme_NotFound(t *testing.T) {
	data, found := GetEmbeddedTheme("nonexistent")
	assert.False(t, found)
	assert.Empty(t, data)
	assert.False(t, IsEmbeddedTheme("nonexistent"))
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()

	assert.ElementsMatch(t, BundledThemes, themes)
	assert.True(t, IsEmbeddedTheme(DefaultThemeName))
}

func TestDefaultMatchesEmbedded(t *testing.T) {
	data, found := GetEmbeddedTheme(DefaultThemeName)
	require.True(t, found)

	p, err := ParsePalette(DefaultThemeName, data)
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.Background, p.Background)
	assert.Equal(t, d.Fill, p.Fill)
	assert.Equal(t, d.Stroke, p.Stroke)
	assert.Equal(t, d.Text, p.Text)
	assert.True(t, p.IsDefault)
}
