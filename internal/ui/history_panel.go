package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-snippet/internal/history"
	"github.com/ytget/yt-snippet/internal/model"
)

// ExportFileName is suggested when exporting the history
const ExportFileName = "extraction-history.xlsx"

// historyRow is one entry of the history list
type historyRow struct {
	widget.BaseWidget

	title   *widget.Label
	meta    *widget.Label
	saveBtn *widget.Button
	openBtn *widget.Button
	record  model.HistoryRecord
}

func newHistoryRow(onSave func(model.HistoryRecord), onOpen func(model.HistoryRecord)) *historyRow {
	r := &historyRow{
		title: widget.NewLabel(""),
		meta:  widget.NewLabel(""),
	}
	r.title.TextStyle = fyne.TextStyle{Bold: true}
	r.title.Truncation = fyne.TextTruncateEllipsis
	r.saveBtn = widget.NewButton(IconDownload, func() { onSave(r.record) })
	r.openBtn = widget.NewButton(IconLink, func() { onOpen(r.record) })
	r.ExtendBaseWidget(r)
	return r
}

func (r *historyRow) CreateRenderer() fyne.WidgetRenderer {
	texts := container.NewVBox(r.title, r.meta)
	buttons := container.NewHBox(r.saveBtn, r.openBtn)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, buttons, texts))
}

func (r *historyRow) setRecord(rec model.HistoryRecord) {
	r.record = rec
	r.title.SetText(formatIcon(rec.Format) + " " + rec.GetDisplayTitle())
	r.meta.SetText(historyMeta(rec))
}

// historyMeta renders the secondary line of a history row
func historyMeta(rec model.HistoryRecord) string {
	meta := rec.Format.Label()
	if rec.Timestamp != "" {
		meta += MiddleDotSeparator + rec.Timestamp
	}
	if rec.Filename != "" && rec.Title != "" {
		meta += MiddleDotSeparator + rec.Title
	}
	return meta
}

func formatIcon(f model.OutputFormat) string {
	if f.IsAudio() {
		return IconMusic
	}
	return IconVideo
}

// HistoryPanel lists completed extractions, newest first
type HistoryPanel struct {
	window       fyne.Window
	localization *Localization
	store        *history.Store
	link         func(jobID string) string

	records    []model.HistoryRecord
	list       *widget.List
	header     *widget.Label
	emptyLabel *widget.Label
	clearBtn   *widget.Button
	exportBtn  *widget.Button
	container  *fyne.Container

	onSave func(model.HistoryRecord)
	onOpen func(model.HistoryRecord)

	// lastPath returns the most recently saved file, if any
	lastPath func() string
}

// NewHistoryPanel creates the panel over store. link maps a job id to its
// download link for exports.
func NewHistoryPanel(window fyne.Window, localization *Localization, store *history.Store, link func(string) string) *HistoryPanel {
	hp := &HistoryPanel{
		window:       window,
		localization: localization,
		store:        store,
		link:         link,
		onSave:       func(model.HistoryRecord) {},
		onOpen:       func(model.HistoryRecord) {},
	}
	hp.createUI()
	hp.Refresh()
	return hp
}

// SetCallbacks sets the per-record download handlers
func (hp *HistoryPanel) SetCallbacks(onSave, onOpen func(model.HistoryRecord)) {
	if onSave != nil {
		hp.onSave = onSave
	}
	if onOpen != nil {
		hp.onOpen = onOpen
	}
}

// SetLastPathSource sets where the export dialog looks up the most recently
// saved file; its folder becomes the dialog's starting location
func (hp *HistoryPanel) SetLastPathSource(lastPath func() string) {
	hp.lastPath = lastPath
}

// lastDownloadDir returns the folder of path if it still exists
func lastDownloadDir(path string) string {
	if path == "" {
		return ""
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

// Container returns the panel's canvas object
func (hp *HistoryPanel) Container() fyne.CanvasObject {
	return hp.container
}

func (hp *HistoryPanel) createUI() {
	hp.header = widget.NewLabel(hp.localization.GetText(KeyHistory))
	hp.header.TextStyle = fyne.TextStyle{Bold: true}
	hp.emptyLabel = widget.NewLabel(hp.localization.GetText(KeyNoHistory))

	hp.list = widget.NewList(
		func() int { return len(hp.records) },
		func() fyne.CanvasObject {
			return newHistoryRow(
				func(rec model.HistoryRecord) { hp.onSave(rec) },
				func(rec model.HistoryRecord) { hp.onOpen(rec) },
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(hp.records) {
				return
			}
			if row, ok := obj.(*historyRow); ok {
				row.setRecord(hp.records[id])
			}
		},
	)

	hp.clearBtn = widget.NewButton(hp.localization.GetText(KeyClearHistory), hp.onClear)
	hp.clearBtn.Importance = widget.DangerImportance
	hp.exportBtn = widget.NewButton(hp.localization.GetText(KeyExportHistory), hp.onExport)

	top := container.NewBorder(nil, nil, nil, container.NewHBox(hp.exportBtn, hp.clearBtn), hp.header)
	listArea := container.NewGridWrap(fyne.NewSize(WindowWidth-40, HistoryListHeight), hp.list)

	hp.container = container.NewVBox(top, hp.emptyLabel, listArea)
}

// Refresh reloads the records from the store. Must run on the Fyne goroutine.
func (hp *HistoryPanel) Refresh() {
	hp.records = hp.store.Records()

	if len(hp.records) == 0 {
		hp.emptyLabel.Show()
		hp.clearBtn.Disable()
		hp.exportBtn.Disable()
	} else {
		hp.emptyLabel.Hide()
		hp.clearBtn.Enable()
		hp.exportBtn.Enable()
	}
	hp.header.SetText(fmt.Sprintf("%s (%d)", hp.localization.GetText(KeyHistory), len(hp.records)))
	hp.list.Refresh()
}

// RefreshTexts re-applies localized labels
func (hp *HistoryPanel) RefreshTexts() {
	hp.emptyLabel.SetText(hp.localization.GetText(KeyNoHistory))
	hp.clearBtn.SetText(hp.localization.GetText(KeyClearHistory))
	hp.exportBtn.SetText(hp.localization.GetText(KeyExportHistory))
	hp.Refresh()
}

// onClear asks for confirmation before emptying the history
func (hp *HistoryPanel) onClear() {
	dialog.ShowConfirm(
		hp.localization.GetText(KeyClearHistory),
		hp.localization.GetText(KeyConfirmClear),
		func(confirmed bool) {
			hp.clear(func() bool { return confirmed })
		},
		hp.window,
	)
}

func (hp *HistoryPanel) clear(confirm func() bool) {
	cleared, err := hp.store.Clear(confirm)
	if err != nil {
		log.Printf("Failed to clear history: %v", err)
		dialog.ShowError(err, hp.window)
	}
	if cleared {
		log.Printf("History cleared")
	}
	hp.Refresh()
}

// onExport writes the history to an XLSX file chosen by the user
func (hp *HistoryPanel) onExport() {
	records := hp.store.Records()
	data, err := history.ExportXLSX(records, hp.link)
	if err != nil {
		log.Printf("Failed to build history export: %v", err)
		dialog.ShowError(fmt.Errorf("%s: %w", hp.localization.GetText(KeyExportFailed), err), hp.window)
		return
	}

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, hp.window)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()

		if _, err := w.Write(data); err != nil {
			log.Printf("Failed to write history export: %v", err)
			dialog.ShowError(fmt.Errorf("%s: %w", hp.localization.GetText(KeyExportFailed), err), hp.window)
			return
		}
		log.Printf("Exported %d history records to %s", len(records), w.URI().Path())
	}, hp.window)
	save.SetFileName(ExportFileName)
	if hp.lastPath != nil {
		if dir := lastDownloadDir(hp.lastPath()); dir != "" {
			if loc, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
				save.SetLocation(loc)
			}
		}
	}
	save.Show()
}
