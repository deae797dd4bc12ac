package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires the extraction form to the job controller and renders job status,
// metadata, history and settings. All UI strings are localized via Localization.
