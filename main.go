package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-snippet/internal/api"
	"github.com/ytget/yt-snippet/internal/config"
	"github.com/ytget/yt-snippet/internal/extract"
	"github.com/ytget/yt-snippet/internal/history"
	"github.com/ytget/yt-snippet/internal/metadata"
	"github.com/ytget/yt-snippet/internal/platform"
	"github.com/ytget/yt-snippet/internal/storage"
	"github.com/ytget/yt-snippet/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-snippet"
	AppName = "YT Snippet"
)

func main() {
	// Log version information
	fmt.Printf("YT Snippet v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewSnippetTheme())
	myApp.SetIcon(ui.AppIcon())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	client := api.NewClient(settings.GetAPIBaseURL())

	store := history.NewStore(storage.NewPreferences(myApp.Preferences()), nil)
	if err := store.Load(); err != nil {
		log.Printf("history not loaded: %v", err)
	}

	resolver := metadata.NewResolver(client)
	controller := extract.NewController(client, store, extract.WithPollInterval(settings.GetPollInterval()))

	playlists := platform.NewPlaylistLister()
	playlists.SetTimeout(ui.PlaylistTimeout)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, controller, resolver, client, playlists, store)

	// Show and run
	myWindow.ShowAndRun()

	resolver.Stop()
	controller.Reset()
}
