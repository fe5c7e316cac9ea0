package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// VisualizerTheme provides a custom theme for the application.
type VisualizerTheme struct{}

var _ fyne.Theme = (*VisualizerTheme)(nil)

func (t *VisualizerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0xFF, G: 0x4B, B: 0x4B, A: 0xFF} // Accent red, matches the default RGB input
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xFF, G: 0x4B, B: 0x4B, A: 0x40}
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // Visible gray scrollbar
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *VisualizerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *VisualizerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *VisualizerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameHeadingText:
		return 28 // Page titles
	default:
		return theme.DefaultTheme().Size(name)
	}
}

// PageIcon returns the theme icon for a page, falling back to a document.
func PageIcon(p Page) fyne.Resource {
	if r := theme.DefaultTheme().Icon(fyne.ThemeIconName(p.Icon)); r != nil {
		return r
	}
	return theme.DocumentIcon()
}
