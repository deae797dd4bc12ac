package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-snippet/internal/config"
	"github.com/ytget/yt-snippet/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	apiURLEntry      *widget.Entry
	formatSelect     *widget.Select
	pollEntry        *widget.Entry
	downloadDirEntry *widget.Entry
	openCheck        *widget.Check
	languageSelect   *widget.Select
	languageCodes    []string
}

// ShowSettingsDialog builds and shows the settings dialog. onSaved runs after
// the values were written.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}
	sd.createUI()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder(config.DefaultAPIBaseURL)

	formatOptions := []string{}
	for _, f := range sd.settings.GetFormatOptions() {
		formatOptions = append(formatOptions, f.Label())
	}
	sd.formatSelect = widget.NewSelect(formatOptions, nil)

	sd.pollEntry = widget.NewEntry()
	sd.pollEntry.SetPlaceHolder(strconv.Itoa(config.MinPollIntervalMs) + "-" + strconv.Itoa(config.MaxPollIntervalMs))

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.openCheck = widget.NewCheck(l.GetText(KeyOpenOnComplete), nil)

	// Language selection, shown by display name
	languageLabels := sd.settings.GetLanguageOptions()
	for code := range languageLabels {
		sd.languageCodes = append(sd.languageCodes, code)
	}
	sort.Strings(sd.languageCodes)
	languageOptions := []string{}
	for _, code := range sd.languageCodes {
		languageOptions = append(languageOptions, languageLabels[code])
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyAPIBaseURL), sd.apiURLEntry),
		widget.NewFormItem(l.GetText(KeyDefaultFormat), sd.formatSelect),
		widget.NewFormItem(l.GetText(KeyPollInterval), sd.pollEntry),
		widget.NewFormItem(l.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem("", sd.openCheck),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
	)

	content := container.NewVBox(form, widget.NewLabel(l.GetText(KeyRestartRequired)))

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		content,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(560, 420))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.apiURLEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.formatSelect.SetSelected(sd.settings.GetDefaultFormat().Label())
	sd.pollEntry.SetText(strconv.Itoa(int(sd.settings.GetPollInterval() / time.Millisecond)))
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.openCheck.SetChecked(sd.settings.GetOpenOnComplete())

	current := sd.settings.GetLanguage()
	if label, ok := sd.settings.GetLanguageOptions()[current]; ok {
		sd.languageSelect.SetSelected(label)
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	sd.settings.SetAPIBaseURL(sd.apiURLEntry.Text)

	if f, ok := model.ParseFormat(sd.formatSelect.Selected); ok {
		sd.settings.SetDefaultFormat(f)
	}

	if ms, err := strconv.Atoi(sd.pollEntry.Text); err == nil {
		sd.settings.SetPollInterval(time.Duration(ms) * time.Millisecond)
	}

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	sd.settings.SetOpenOnComplete(sd.openCheck.Checked)

	if idx := sd.languageSelect.SelectedIndex(); idx >= 0 && idx < len(sd.languageCodes) {
		sd.settings.SetLanguage(sd.languageCodes[idx])
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
