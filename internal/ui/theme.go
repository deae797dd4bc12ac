package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SnippetTheme tints the default theme with the app colors and slightly
// tighter spacing
type SnippetTheme struct{}

// NewSnippetTheme creates the application theme
func NewSnippetTheme() fyne.Theme {
	return &SnippetTheme{}
}

// Color returns theme colors
func (t *SnippetTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.RGBA{R: 124, G: 58, B: 237, A: 255} // Violet
	case theme.ColorNameSuccess:
		return color.RGBA{R: 22, G: 163, B: 74, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 220, G: 38, B: 38, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 217, G: 119, B: 6, A: 255}
	case theme.ColorNameHyperlink:
		if variant == theme.VariantDark {
			return color.RGBA{R: 167, G: 139, B: 250, A: 255}
		}
		return color.RGBA{R: 109, G: 40, B: 217, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *SnippetTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *SnippetTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *SnippetTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInputRadius:
		return 6
	}

	return theme.DefaultTheme().Size(name)
}
