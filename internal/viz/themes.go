package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for panels and scene layers.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color

	Tunnel       lipgloss.Color
	Wind         lipgloss.Color
	Stream       lipgloss.Color
	PressureLow  lipgloss.Color
	PressureHigh lipgloss.Color
	Object       lipgloss.Color
	ObjectHot    lipgloss.Color
}

// Available themes
var (
	ThemeLab = Theme{
		Name:         "lab",
		Primary:      lipgloss.Color("#00ffff"),
		Accent:       lipgloss.Color("#ff00ff"),
		Background:   lipgloss.Color("#0a0a0a"),
		Text:         lipgloss.Color("#ffffff"),
		Muted:        lipgloss.Color("#666666"),
		Success:      lipgloss.Color("#00ff88"),
		Error:        lipgloss.Color("#ff4444"),
		Tunnel:       lipgloss.Color("#5f5f87"),
		Wind:         lipgloss.Color("#ffff00"),
		Stream:       lipgloss.Color("#e0e0e0"),
		PressureLow:  lipgloss.Color("#0077be"),
		PressureHigh: lipgloss.Color("#ff8800"),
		Object:       lipgloss.Color("#c0c0c0"),
		ObjectHot:    lipgloss.Color("#ff4757"),
	}

	ThemeRetroGreen = Theme{
		Name:         "retro",
		Primary:      lipgloss.Color("#00ff00"),
		Accent:       lipgloss.Color("#88ff88"),
		Background:   lipgloss.Color("#001100"),
		Text:         lipgloss.Color("#00ff00"),
		Muted:        lipgloss.Color("#005500"),
		Success:      lipgloss.Color("#88ff88"),
		Error:        lipgloss.Color("#ff0000"),
		Tunnel:       lipgloss.Color("#005500"),
		Wind:         lipgloss.Color("#ffff00"),
		Stream:       lipgloss.Color("#00cc00"),
		PressureLow:  lipgloss.Color("#007700"),
		PressureHigh: lipgloss.Color("#88ff88"),
		Object:       lipgloss.Color("#00ff00"),
		ObjectHot:    lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:         "ocean",
		Primary:      lipgloss.Color("#0077be"),
		Accent:       lipgloss.Color("#ffd700"),
		Background:   lipgloss.Color("#001a33"),
		Text:         lipgloss.Color("#e0f0ff"),
		Muted:        lipgloss.Color("#4488aa"),
		Success:      lipgloss.Color("#00ff88"),
		Error:        lipgloss.Color("#ff4444"),
		Tunnel:       lipgloss.Color("#4488aa"),
		Wind:         lipgloss.Color("#ffd700"),
		Stream:       lipgloss.Color("#00a8cc"),
		PressureLow:  lipgloss.Color("#004466"),
		PressureHigh: lipgloss.Color("#ffcc00"),
		Object:       lipgloss.Color("#e0f0ff"),
		ObjectHot:    lipgloss.Color("#ff6b6b"),
	}

	// All available themes
	Themes = []Theme{ThemeLab, ThemeRetroGreen, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLab
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// LayerColor is the colour t gives to l.
func (t Theme) LayerColor(l Layer) lipgloss.Color {
	switch l {
	case LayerTunnel:
		return t.Tunnel
	case LayerWind:
		return t.Wind
	case LayerStream:
		return t.Stream
	case LayerPressureLow:
		return t.PressureLow
	case LayerPressureHigh:
		return t.PressureHigh
	case LayerObject:
		return t.Object
	case LayerObjectHot:
		return t.ObjectHot
	}
	return t.Text
}

// LayerRGB is LayerColor as 8-bit components.
func (t Theme) LayerRGB(l Layer) (r, g, b uint8) {
	ri, gi, bi := parseHex(string(t.LayerColor(l)))
	return uint8(ri), uint8(gi), uint8(bi)
}

// BackgroundRGB is the background as 8-bit components.
func (t Theme) BackgroundRGB() (r, g, b uint8) {
	ri, gi, bi := parseHex(string(t.Background))
	return uint8(ri), uint8(gi), uint8(bi)
}
