package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-snippet/internal/extract"
	"github.com/ytget/yt-snippet/internal/model"
)

// statusView is what the status card shows for one snapshot
type statusView struct {
	Visible      bool
	Badge        string
	Message      string
	Detail       string
	Percent      float64 // -1 when unknown
	Error        string
	ShowDownload bool
	ShowRetry    bool
}

// buildStatusView derives the card content from a snapshot. n selects the
// pacifying message so it rotates between updates.
func buildStatusView(s extract.Snapshot, now time.Time, n int) statusView {
	v := statusView{Percent: -1, Error: s.Error}
	if s.Job == nil {
		switch {
		case s.State == model.JobStateSubmitting:
			v.Visible = true
			v.Badge = strings.ToUpper(string(s.State))
			v.Message = pacifyingMessage(model.CategoryCreated, n)
		case s.Error != "":
			// a failed create leaves the controller idle with an error
			v.Visible = true
		}
		return v
	}
	v.Visible = true
	v.Badge = strings.ToUpper(string(s.State))

	category := model.Category(s.Job)
	if s.ConnectionLost {
		category = model.CategoryFailed
	}
	v.Message = pacifyingMessage(category, n)
	v.Percent = s.Job.PercentValue()

	var parts []string
	if s.Job.Progress != "" && !s.State.IsTerminal() {
		parts = append(parts, s.Job.Progress)
	}
	if v.Percent >= 0 {
		parts = append(parts, fmt.Sprintf(PercentFormat, int(v.Percent)))
	}
	if !s.StartedAt.IsZero() && s.State.IsActive() {
		elapsed := now.Sub(s.StartedAt)
		if left, ok := model.EstimateRemaining(s.Job, elapsed); ok {
			parts = append(parts, model.FormatRemaining(left))
		}
	}
	v.Detail = strings.Join(parts, MiddleDotSeparator)

	v.ShowDownload = s.State == model.JobStateCompleted
	v.ShowRetry = s.ConnectionLost
	return v
}

// pacifyingMessage picks the n-th message of a category
func pacifyingMessage(category model.StatusCategory, n int) string {
	messages, ok := PacifyingMessages[string(category)]
	if !ok || len(messages) == 0 {
		messages = PacifyingMessages[string(model.CategoryProcessing)]
	}
	if n < 0 {
		n = -n
	}
	return messages[n%len(messages)]
}

// StatusCard renders the current job
type StatusCard struct {
	localization *Localization

	container   *fyne.Container
	badge       *widget.Label
	message     *widget.Label
	progress    *widget.ProgressBar
	busy        *widget.ProgressBarInfinite
	detail      *widget.Label
	errorLabel  *widget.Label
	openBtn     *widget.Button
	saveBtn     *widget.Button
	retryBtn    *widget.Button
	downloadRow *fyne.Container

	jobID   string
	updates int

	onOpen  func(jobID string)
	onSave  func(jobID string)
	onRetry func()
}

// NewStatusCard creates a hidden status card
func NewStatusCard(localization *Localization) *StatusCard {
	sc := &StatusCard{localization: localization}
	sc.createUI()
	return sc
}

// SetCallbacks sets the download and retry handlers
func (sc *StatusCard) SetCallbacks(onOpen, onSave func(jobID string), onRetry func()) {
	sc.onOpen = onOpen
	sc.onSave = onSave
	sc.onRetry = onRetry
}

// Container returns the card's canvas object
func (sc *StatusCard) Container() fyne.CanvasObject {
	return sc.container
}

func (sc *StatusCard) createUI() {
	sc.badge = widget.NewLabel("")
	sc.badge.TextStyle = fyne.TextStyle{Bold: true}
	sc.message = widget.NewLabel("")
	sc.message.Wrapping = fyne.TextWrapWord
	sc.progress = widget.NewProgressBar()
	sc.busy = widget.NewProgressBarInfinite()
	sc.busy.Hide()
	sc.detail = widget.NewLabel("")
	sc.errorLabel = widget.NewLabel("")
	sc.errorLabel.Wrapping = fyne.TextWrapWord
	sc.errorLabel.Importance = widget.DangerImportance

	sc.openBtn = widget.NewButton(IconLink+" "+sc.localization.GetText(KeyOpenInBrowser), func() {
		if sc.onOpen != nil && sc.jobID != "" {
			sc.onOpen(sc.jobID)
		}
	})
	sc.saveBtn = widget.NewButton(IconDownload+" "+sc.localization.GetText(KeySaveToDisk), func() {
		if sc.onSave != nil && sc.jobID != "" {
			sc.onSave(sc.jobID)
		}
	})
	sc.saveBtn.Importance = widget.HighImportance
	sc.downloadRow = container.NewHBox(sc.saveBtn, sc.openBtn)
	sc.downloadRow.Hide()

	sc.retryBtn = widget.NewButton(sc.localization.GetText(KeyTryAgain), func() {
		if sc.onRetry != nil {
			sc.onRetry()
		}
	})
	sc.retryBtn.Hide()

	sc.container = container.NewVBox(
		container.NewBorder(nil, nil, sc.badge, nil, sc.message),
		container.NewStack(sc.progress, sc.busy),
		sc.detail,
		sc.errorLabel,
		container.NewHBox(sc.downloadRow, sc.retryBtn),
	)
	sc.container.Hide()
}

// Update renders a snapshot. Must run on the Fyne goroutine.
func (sc *StatusCard) Update(s extract.Snapshot, now time.Time) {
	sc.updates++
	v := buildStatusView(s, now, sc.updates)
	sc.jobID = s.JobID()

	if !v.Visible {
		sc.container.Hide()
		return
	}

	sc.badge.SetText(v.Badge)
	sc.message.SetText(v.Message)
	sc.detail.SetText(v.Detail)
	sc.errorLabel.SetText(v.Error)

	switch {
	case v.Percent >= 0:
		sc.busy.Hide()
		sc.progress.Show()
		sc.progress.SetValue(v.Percent / 100)
	case s.State.IsActive():
		sc.progress.Hide()
		sc.busy.Show()
	default:
		sc.busy.Hide()
		sc.progress.Hide()
	}

	if v.ShowDownload {
		sc.downloadRow.Show()
	} else {
		sc.downloadRow.Hide()
	}
	if v.ShowRetry {
		sc.retryBtn.Show()
	} else {
		sc.retryBtn.Hide()
	}

	sc.container.Show()
	sc.container.Refresh()
}

// RefreshTexts re-applies localized button labels
func (sc *StatusCard) RefreshTexts() {
	sc.openBtn.SetText(IconLink + " " + sc.localization.GetText(KeyOpenInBrowser))
	sc.saveBtn.SetText(IconDownload + " " + sc.localization.GetText(KeySaveToDisk))
	sc.retryBtn.SetText(sc.localization.GetText(KeyTryAgain))
}
