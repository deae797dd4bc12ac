package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-snippet/internal/config"
	"github.com/ytget/yt-snippet/internal/extract"
	"github.com/ytget/yt-snippet/internal/history"
	"github.com/ytget/yt-snippet/internal/model"
	"github.com/ytget/yt-snippet/internal/platform"
	"github.com/ytget/yt-snippet/internal/validate"
)

// Downloader fetches finished job outputs
type Downloader interface {
	DownloadURL(jobID string) string
	Download(ctx context.Context, jobID string, w io.Writer) (string, error)
}

// MetadataResolver resolves video info for the URL being typed
type MetadataResolver interface {
	SetCallback(func(*model.VideoInfo))
	Update(url string)
	Current() *model.VideoInfo
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization

	controller extract.Extractor
	resolver   MetadataResolver
	downloader Downloader
	lister     PlaylistLister
	store      *history.Store

	// Form
	urlEntry      *widget.Entry
	pasteBtn      *widget.Button
	playlistBtn   *widget.Button
	infoLabel     *widget.Label
	fullCheck     *widget.Check
	startEntry    *widget.Entry
	endEntry      *widget.Entry
	spanLabel     *widget.Label
	rangeRow      *fyne.Container
	formatSelect  *widget.Select
	filenameEntry *widget.Entry
	topicEntry    *widget.Entry
	authorEntry   *widget.Entry
	advanced      *widget.Accordion
	formError     *widget.Label

	// Actions
	submitBtn *widget.Button
	cancelBtn *widget.Button
	resetBtn  *widget.Button

	statusCard   *StatusCard
	historyPanel *HistoryPanel

	// last submitted request, for retry and file names
	lastRequest *model.ExtractionRequest
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, controller extract.Extractor, resolver MetadataResolver,
	downloader Downloader, lister PlaylistLister, store *history.Store) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		controller:   controller,
		resolver:     resolver,
		downloader:   downloader,
		lister:       lister,
		store:        store,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Controller and resolver callbacks arrive on background goroutines
	ui.controller.SetUpdateCallback(func(s extract.Snapshot) {
		fyne.Do(func() { ui.applySnapshot(s) })
	})
	ui.resolver.SetCallback(func(info *model.VideoInfo) {
		ui.controller.SetVideoInfo(info)
		fyne.Do(func() { ui.showVideoInfo(info) })
	})

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()
	l := ui.localization

	// URL row
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.urlEntry.OnChanged = ui.onURLChanged
	ui.urlEntry.OnSubmitted = func(string) { ui.onSubmit() }

	ui.pasteBtn = widget.NewButton(IconPaste+" "+l.GetText(KeyPaste), ui.onPaste)
	ui.playlistBtn = widget.NewButton(IconList+" "+l.GetText(KeyPlaylist), ui.onPlaylist)
	ui.playlistBtn.Hide()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	logo := canvas.NewImageFromResource(AppIcon())
	logo.SetMinSize(fyne.NewSize(32, 32))
	logo.FillMode = canvas.ImageFillContain

	urlRow := container.NewBorder(nil, nil,
		container.NewHBox(logo, settingsBtn),
		container.NewHBox(ui.playlistBtn, ui.pasteBtn),
		ui.urlEntry,
	)

	ui.infoLabel = widget.NewLabel("")
	ui.infoLabel.Wrapping = fyne.TextWrapWord
	ui.infoLabel.Hide()

	// Range
	ui.fullCheck = widget.NewCheck(l.GetText(KeyExtractFull), ui.onFullToggled)
	ui.startEntry = widget.NewEntry()
	ui.startEntry.SetText(validate.DefaultStartTime)
	ui.startEntry.OnChanged = func(string) { ui.refreshSpan() }
	ui.endEntry = widget.NewEntry()
	ui.endEntry.SetPlaceHolder("5:30")
	ui.endEntry.OnChanged = func(string) { ui.refreshSpan() }
	ui.spanLabel = widget.NewLabel("")

	ui.rangeRow = container.NewHBox(
		widget.NewLabel(l.GetText(KeyStartTime)),
		container.NewGridWrap(fyne.NewSize(TimeEntryWidth, ui.startEntry.MinSize().Height), ui.startEntry),
		widget.NewLabel(l.GetText(KeyEndTime)),
		container.NewGridWrap(fyne.NewSize(TimeEntryWidth, ui.endEntry.MinSize().Height), ui.endEntry),
		ui.spanLabel,
	)

	// Format
	formatLabels := []string{}
	for _, f := range model.Formats() {
		formatLabels = append(formatLabels, f.Label())
	}
	ui.formatSelect = widget.NewSelect(formatLabels, nil)
	ui.formatSelect.SetSelected(ui.settings.GetDefaultFormat().Label())

	// Advanced
	ui.filenameEntry = widget.NewEntry()
	ui.topicEntry = widget.NewEntry()
	ui.authorEntry = widget.NewEntry()
	advancedForm := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyFilename), ui.filenameEntry),
		widget.NewFormItem(l.GetText(KeyTopic), ui.topicEntry),
		widget.NewFormItem(l.GetText(KeyAuthor), ui.authorEntry),
	)
	ui.advanced = widget.NewAccordion(widget.NewAccordionItem(l.GetText(KeyAdvanced), advancedForm))

	ui.formError = widget.NewLabel("")
	ui.formError.Importance = widget.DangerImportance
	ui.formError.Wrapping = fyne.TextWrapWord
	ui.formError.Hide()

	// Actions
	ui.submitBtn = widget.NewButton(l.GetText(KeyExtract), ui.onSubmit)
	ui.submitBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(l.GetText(KeyCancel), ui.onCancel)
	ui.cancelBtn.Disable()
	ui.resetBtn = widget.NewButton(l.GetText(KeyNewExtraction), ui.onReset)
	actions := container.NewHBox(ui.submitBtn, ui.cancelBtn, ui.resetBtn)

	// Status and history
	ui.statusCard = NewStatusCard(l)
	ui.statusCard.SetCallbacks(ui.onOpenLink, ui.onSaveCurrent, ui.onSubmit)

	ui.historyPanel = NewHistoryPanel(ui.window, l, ui.store, ui.downloader.DownloadURL)
	ui.historyPanel.SetCallbacks(ui.onSaveRecord, func(rec model.HistoryRecord) { ui.onOpenLink(rec.ID) })
	ui.historyPanel.SetLastPathSource(ui.settings.GetLastDownloadPath)

	formBox := container.NewVBox(
		urlRow,
		ui.infoLabel,
		ui.fullCheck,
		ui.rangeRow,
		container.NewBorder(nil, nil, widget.NewLabel(l.GetText(KeyFormat)), nil, ui.formatSelect),
		ui.advanced,
		ui.formError,
		actions,
	)

	content := container.NewVBox(
		formBox,
		widget.NewSeparator(),
		ui.statusCard.Container(),
		widget.NewSeparator(),
		ui.historyPanel.Container(),
	)

	ui.window.SetContent(container.NewVScroll(content))
	ui.applySnapshot(ui.controller.Snapshot())

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language. Labels inside
// forms keep the language they were built with until restart.
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.pasteBtn.SetText(IconPaste + " " + l.GetText(KeyPaste))
	ui.playlistBtn.SetText(IconList + " " + l.GetText(KeyPlaylist))
	ui.fullCheck.Text = l.GetText(KeyExtractFull)
	ui.fullCheck.Refresh()
	ui.submitBtn.SetText(l.GetText(KeyExtract))
	ui.cancelBtn.SetText(l.GetText(KeyCancel))
	ui.resetBtn.SetText(l.GetText(KeyNewExtraction))
	ui.statusCard.RefreshTexts()
	ui.historyPanel.RefreshTexts()
	ui.refreshSpan()
}

// readForm collects the current field values
func (ui *RootUI) readForm() validate.Form {
	format, ok := model.ParseFormat(ui.formatSelect.Selected)
	if !ok {
		format = model.DefaultFormat
	}
	return validate.Form{
		URL:         strings.TrimSpace(ui.urlEntry.Text),
		StartTime:   strings.TrimSpace(ui.startEntry.Text),
		EndTime:     strings.TrimSpace(ui.endEntry.Text),
		ExtractFull: ui.fullCheck.Checked,
		Format:      format,
		Filename:    ui.filenameEntry.Text,
		Topic:       ui.topicEntry.Text,
		Author:      ui.authorEntry.Text,
	}
}

func (ui *RootUI) onURLChanged(text string) {
	ui.resolver.Update(text)
	if platform.HasPlaylist(text) {
		ui.playlistBtn.Show()
	} else {
		ui.playlistBtn.Hide()
	}
	ui.hideFormError()
}

func (ui *RootUI) onPaste() {
	text := ui.window.Clipboard().Content()
	if text == "" {
		return
	}
	ui.urlEntry.SetText(strings.TrimSpace(text))
}

func (ui *RootUI) onPlaylist() {
	ShowPlaylistPicker(ui.window, ui.localization, ui.lister, ui.urlEntry.Text, func(videoURL string) {
		ui.urlEntry.SetText(videoURL)
	})
}

func (ui *RootUI) onFullToggled(full bool) {
	if full {
		ui.rangeRow.Hide()
	} else {
		ui.rangeRow.Show()
	}
	ui.refreshSpan()
	ui.hideFormError()
}

// showVideoInfo renders resolved metadata; nil hides it
func (ui *RootUI) showVideoInfo(info *model.VideoInfo) {
	if info == nil {
		ui.infoLabel.Hide()
		ui.refreshSpan()
		return
	}

	parts := []string{info.Title}
	if info.Uploader != "" {
		parts = append(parts, ui.localization.GetText(KeyUploader)+": "+info.Uploader)
	}
	if info.Duration > 0 {
		parts = append(parts, ui.localization.GetText(KeyDuration)+": "+model.FormatDuration(info.Duration))
	}
	ui.infoLabel.SetText(strings.Join(parts, MiddleDotSeparator))
	ui.infoLabel.Show()
	ui.refreshSpan()
}

// refreshSpan shows the selected length while the range is typed
func (ui *RootUI) refreshSpan() {
	seconds, ok := validate.SnippetSpan(ui.readForm(), ui.resolver.Current())
	if !ok {
		ui.spanLabel.SetText("")
		return
	}
	ui.spanLabel.SetText(ui.localization.GetText(KeySnippetLength) + ": " + model.FormatDuration(seconds))
}

func (ui *RootUI) showFormError(msg string) {
	ui.formError.SetText(IconError + " " + msg)
	ui.formError.Show()
}

func (ui *RootUI) hideFormError() {
	ui.formError.Hide()
}

// onSubmit validates the form and starts an extraction
func (ui *RootUI) onSubmit() {
	form := ui.readForm()
	if err := validate.Validate(form, ui.resolver.Current()); err != nil {
		ui.showFormError(err.Error())
		return
	}
	ui.hideFormError()

	req := form.Request()
	ui.lastRequest = &req
	log.Printf("Submitting extraction for %s (format %s, full %v)", req.URL, req.OutputFormat, req.ExtractFull)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), SubmitTimeout)
		defer cancel()
		if err := ui.controller.Submit(ctx, req); err != nil && !errors.Is(err, extract.ErrSuperseded) {
			log.Printf("Submit failed: %v", err)
		}
	}()
}

func (ui *RootUI) onCancel() {
	ui.cancelBtn.Disable()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), CancelTimeout)
		defer cancel()
		if err := ui.controller.Cancel(ctx); err != nil {
			log.Printf("Cancel ignored: %v", err)
		}
	}()
}

// onReset clears the job and the form
func (ui *RootUI) onReset() {
	ui.controller.Reset()
	ui.lastRequest = nil
	ui.urlEntry.SetText("")
	ui.startEntry.SetText(validate.DefaultStartTime)
	ui.endEntry.SetText("")
	ui.fullCheck.SetChecked(false)
	ui.filenameEntry.SetText("")
	ui.topicEntry.SetText("")
	ui.authorEntry.SetText("")
	ui.formatSelect.SetSelected(ui.settings.GetDefaultFormat().Label())
	ui.hideFormError()
}

// applySnapshot renders controller state. Must run on the Fyne goroutine.
func (ui *RootUI) applySnapshot(s extract.Snapshot) {
	active := s.State.IsActive()
	inputs := []fyne.Disableable{
		ui.urlEntry, ui.startEntry, ui.endEntry, ui.fullCheck, ui.formatSelect,
		ui.filenameEntry, ui.topicEntry, ui.authorEntry, ui.pasteBtn, ui.playlistBtn, ui.submitBtn,
	}
	for _, w := range inputs {
		if active {
			w.Disable()
		} else {
			w.Enable()
		}
	}
	if s.State.CanCancel() {
		ui.cancelBtn.Enable()
	} else {
		ui.cancelBtn.Disable()
	}

	ui.statusCard.Update(s, time.Now())

	if s.State == model.JobStateCompleted {
		ui.historyPanel.Refresh()
	}
}

func (ui *RootUI) onOpenLink(jobID string) {
	if err := platform.OpenURL(ui.downloader.DownloadURL(jobID)); err != nil {
		log.Printf("Failed to open download link: %v", err)
		dialog.ShowError(err, ui.window)
	}
}

func (ui *RootUI) onSaveCurrent(jobID string) {
	name := jobID
	format := model.DefaultFormat
	if ui.lastRequest != nil {
		format = ui.lastRequest.OutputFormat
		if ui.lastRequest.Filename != "" {
			name = ui.lastRequest.Filename
		}
	}
	ui.saveDownload(jobID, fallbackFileName(name, format))
}

func (ui *RootUI) onSaveRecord(rec model.HistoryRecord) {
	ui.saveDownload(rec.ID, fallbackFileName(rec.GetDisplayTitle(), rec.Format))
}

// fallbackFileName is used when the service sends no file name
func fallbackFileName(name string, format model.OutputFormat) string {
	if !format.IsValid() {
		format = model.DefaultFormat
	}
	ext := "." + string(format)
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

// saveDownload streams the job output into the download directory
func (ui *RootUI) saveDownload(jobID, fallbackName string) {
	dir := ui.settings.GetDownloadDirectory()
	openAfter := ui.settings.GetOpenOnComplete()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), DownloadTimeout)
		defer cancel()

		path, err := platform.SaveStream(dir, fallbackName, func(w io.Writer) (string, error) {
			return ui.downloader.Download(ctx, jobID, w)
		})

		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to save job %s: %v", jobID, err)
				dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeySaveFailed), err), ui.window)
				return
			}
			log.Printf("Saved job %s to %s", jobID, path)
			ui.settings.SetLastDownloadPath(path)
			l := ui.localization
			dialog.ShowConfirm(l.GetText(KeySaveToDisk), l.GetText(KeySavedTo)+" "+path+"\n\n"+l.GetText(KeyShowInFolder)+"?", func(show bool) {
				if !show {
					return
				}
				if err := platform.OpenFileInManager(path); err != nil {
					log.Printf("Failed to show %s: %v", path, err)
				}
			}, ui.window)
			if openAfter {
				if err := platform.OpenFileWithDefaultApp(path); err != nil {
					log.Printf("Failed to open %s: %v", path, err)
				}
			}
		})
	}()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
}
