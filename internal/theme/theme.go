package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// ErrThemeNotFound is returned when neither a user nor a bundled palette matches.
var ErrThemeNotFound = errors.New("theme not found")

// Palette describes the colours of a banner and the host it sits on.
// Terminals have no alpha channel, so translucency is emulated by blending
// toward Background.
type Palette struct {
	Name      string    `toml:"-"`
	Path      string    `toml:"-"` // Empty for bundled palettes
	ModTime   time.Time `toml:"-"`
	IsDefault bool      `toml:"-"`

	Background string  `toml:"background"` // Host area colour
	Fill       string  `toml:"fill"`
	FillAlpha  float64 `toml:"fill_alpha"` // 0.0-1.0
	Stroke     string  `toml:"stroke"`
	Text       string  `toml:"text"`
	Spinner    string  `toml:"spinner"`
}

// ParsePalette decodes palette TOML.
// Missing fields keep the default palette's values.
func ParsePalette(name, data string) (Palette, error) {
	p := Default()
	p.Name = name
	p.IsDefault = name == DefaultThemeName
	if err := toml.Unmarshal([]byte(data), &p); err != nil {
		return Palette{}, fmt.Errorf("parse theme %q: %w", name, err)
	}
	return p, nil
}

// NewPalette loads a palette from a TOML file.
func NewPalette(name, path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Palette{}, err
	}

	p, err := ParsePalette(name, string(data))
	if err != nil {
		return Palette{}, err
	}
	p.Path = path
	p.ModTime = info.ModTime()
	p.IsDefault = false
	return p, nil
}

// Default returns the built-in palette without touching the embedded files.
func Default() Palette {
	return Palette{
		Name:       DefaultThemeName,
		IsDefault:  true,
		Background: "#FF8C00",
		Fill:       "#000000",
		FillAlpha:  0.8,
		Stroke:     "#000000",
		Text:       "#FFFFFF",
		Spinner:    "#FFFFFF",
	}
}

// Load resolves a palette by name.
// Resolution order:
//  1. User themes directory (~/.config/discreet/themes/<name>.toml)
//  2. Embedded/bundled palettes
//
// On failure the default palette is returned along with the error, so callers
// can log and carry on.
func Load(name string) (Palette, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if dir, err := ThemesDir(); err == nil {
		path := filepath.Join(dir, name+".toml")
		if _, err := os.Stat(path); err == nil {
			p, err := NewPalette(name, path)
			if err != nil {
				return Default(), err
			}
			return p, nil
		}
	}

	if data, found := GetEmbeddedTheme(name); found {
		return ParsePalette(name, data)
	}

	return Default(), fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

func (p Palette) colours() [6]string {
	return [6]string{p.Background, p.Fill, fmt.Sprint(p.FillAlpha), p.Stroke, p.Text, p.Spinner}
}

// ThemeInfo provides basic palette information for listing.
type ThemeInfo struct {
	Name      string
	Path      string
	IsDefault bool
	IsBundled bool
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "discreet", "themes"), nil
}

// ListAvailableThemes lists all available palettes (bundled + user).
func ListAvailableThemes() ([]ThemeInfo, error) {
	seen := make(map[string]bool)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		if !seen[name] {
			seen[name] = true
			themes = append(themes, ThemeInfo{
				Name:      name,
				IsDefault: name == DefaultThemeName,
				IsBundled: true,
			})
		}
	}

	themesDir, err := ThemesDir()
	if err != nil {
		return themes, nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".toml" {
			themeName := name[:len(name)-5]
			if !seen[themeName] {
				seen[themeName] = true
				themes = append(themes, ThemeInfo{
					Name: themeName,
					Path: filepath.Join(themesDir, name),
				})
			}
		}
	}

	return themes, nil
}

// BackgroundColor returns the host colour.
func (p Palette) BackgroundColor() lipgloss.Color {
	return lipgloss.Color(parseHex(p.Background, colorful.Color{}).Hex())
}

// FillColor returns the banner fill at the given opacity, including FillAlpha.
func (p Palette) FillColor(opacity float64) lipgloss.Color {
	return p.Blend(p.Fill, p.FillAlpha*opacity)
}

// StrokeColor returns the outline colour at the given opacity.
func (p Palette) StrokeColor(opacity float64) lipgloss.Color {
	return p.Blend(p.Stroke, opacity)
}

// TextColor returns the label colour at the given opacity.
// Text sits on the fill, so it fades toward the fill rather than the host.
func (p Palette) TextColor(opacity float64) lipgloss.Color {
	return p.blendOver(p.FillColor(opacity), p.Text, opacity)
}

// SpinnerColor returns the spinner colour at the given opacity.
func (p Palette) SpinnerColor(opacity float64) lipgloss.Color {
	return p.blendOver(p.FillColor(opacity), p.Spinner, opacity)
}

// Blend mixes hex over the background with the given alpha.
func (p Palette) Blend(hex string, alpha float64) lipgloss.Color {
	return p.blendOver(p.BackgroundColor(), hex, alpha)
}

func (p Palette) blendOver(base lipgloss.Color, hex string, alpha float64) lipgloss.Color {
	bg := parseHex(string(base), colorful.Color{})
	fg := parseHex(hex, colorful.Color{R: 1, G: 1, B: 1})
	return lipgloss.Color(bg.BlendRgb(fg, clamp01(alpha)).Clamped().Hex())
}

// parseHex parses a #rrggbb colour, returning fallback when it is malformed.
func parseHex(hex string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
