package ui

import (
	"context"
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-snippet/internal/platform"
)

// PlaylistLister lists playlist entries
type PlaylistLister interface {
	List(ctx context.Context, link string) (*platform.Playlist, error)
}

// ShowPlaylistPicker lists the playlist of link and lets the user pick one
// video; onPick receives the entry's watch URL.
func ShowPlaylistPicker(window fyne.Window, localization *Localization, lister PlaylistLister, link string, onPick func(videoURL string)) {
	progress := dialog.NewCustomWithoutButtons(
		localization.GetText(KeyPlaylist),
		container.NewVBox(widget.NewLabel(localization.GetText(KeyLoadingPlaylist)), widget.NewProgressBarInfinite()),
		window,
	)
	progress.Show()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PlaylistTimeout)
		defer cancel()

		playlist, err := lister.List(ctx, link)
		fyne.Do(func() {
			progress.Hide()
			if err != nil {
				log.Printf("Failed to list playlist %s: %v", link, err)
				dialog.ShowError(err, window)
				return
			}
			if len(playlist.Entries) == 0 {
				dialog.ShowError(errors.New(localization.GetText(KeyPlaylistEmpty)), window)
				return
			}
			showPlaylistEntries(window, localization, playlist, onPick)
		})
	}()
}

func showPlaylistEntries(window fyne.Window, localization *Localization, playlist *platform.Playlist, onPick func(string)) {
	var picker dialog.Dialog

	list := widget.NewList(
		func() int { return len(playlist.Entries) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(playlist.Entries[id].Title)
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		entry := playlist.Entries[id]
		log.Printf("Picked playlist entry %s (%s)", entry.ID, entry.Title)
		onPick(entry.URL)
		if picker != nil {
			picker.Hide()
		}
	}

	content := container.NewBorder(widget.NewLabel(playlist.Title), nil, nil, nil, list)
	picker = dialog.NewCustom(localization.GetText(KeyPickVideo), localization.GetText(KeyCancel), content, window)
	picker.Resize(fyne.NewSize(520, 420))
	picker.Show()
}
