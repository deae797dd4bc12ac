package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppIconFile is looked up next to the binary
const AppIconFile = "yt-snippet.png"

// AppIcon returns the application icon, falling back to a theme icon when the
// image file is not shipped alongside the binary
func AppIcon() fyne.Resource {
	if res, err := fyne.LoadResourceFromPath(AppIconFile); err == nil {
		return res
	}
	return theme.MediaMusicIcon()
}
