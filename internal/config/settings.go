package config

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"github.com/ytget/yt-snippet/internal/api"
	"github.com/ytget/yt-snippet/internal/model"
	"github.com/ytget/yt-snippet/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL       = "api_base_url"
	KeyDefaultFormat    = "default_output_format"
	KeyPollIntervalMs   = "poll_interval_ms"
	KeyLanguage         = "app_language"
	KeyDownloadDir      = "download_directory"
	KeyOpenOnComplete   = "open_download_on_complete"
	KeyLastDownloadPath = "last_download_path"
)

// Default values
const (
	DefaultAPIBaseURL     = api.DefaultBaseURL
	DefaultFormat         = model.DefaultFormat
	DefaultPollIntervalMs = 2000
	DefaultLanguage       = "system"
	DefaultOpenOnComplete = false

	MinPollIntervalMs = 500
	MaxPollIntervalMs = 10000
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetAPIBaseURL returns the extraction service base URL
func (s *Settings) GetAPIBaseURL() string {
	url := s.app.Preferences().String(KeyAPIBaseURL)
	if url == "" {
		s.SetAPIBaseURL(DefaultAPIBaseURL)
		return DefaultAPIBaseURL
	}
	return url
}

// SetAPIBaseURL sets the extraction service base URL; empty restores the default
func (s *Settings) SetAPIBaseURL(url string) {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		url = DefaultAPIBaseURL
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, url)
}

// GetDefaultFormat returns the format preselected in the form
func (s *Settings) GetDefaultFormat() model.OutputFormat {
	f := model.OutputFormat(s.app.Preferences().String(KeyDefaultFormat))
	if !f.IsValid() {
		s.SetDefaultFormat(DefaultFormat)
		return DefaultFormat
	}
	return f
}

// SetDefaultFormat sets the preselected format; unknown formats are ignored
func (s *Settings) SetDefaultFormat(f model.OutputFormat) {
	if !f.IsValid() {
		f = DefaultFormat
	}
	s.app.Preferences().SetString(KeyDefaultFormat, string(f))
}

// GetPollInterval returns the delay between job status requests
func (s *Settings) GetPollInterval() time.Duration {
	value := s.app.Preferences().Int(KeyPollIntervalMs)
	if value <= 0 {
		s.SetPollInterval(DefaultPollIntervalMs * time.Millisecond)
		return DefaultPollIntervalMs * time.Millisecond
	}
	return time.Duration(value) * time.Millisecond
}

// SetPollInterval sets the poll interval, clamped to [500ms, 10s]
func (s *Settings) SetPollInterval(d time.Duration) {
	ms := int(d / time.Millisecond)
	if ms < MinPollIntervalMs {
		ms = MinPollIntervalMs
	}
	if ms > MaxPollIntervalMs {
		ms = MaxPollIntervalMs
	}
	s.app.Preferences().SetInt(KeyPollIntervalMs, ms)
}

// GetDownloadDirectory returns the directory downloads are saved to
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetOpenOnComplete returns whether saved files are opened automatically
func (s *Settings) GetOpenOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyOpenOnComplete, DefaultOpenOnComplete)
}

// SetOpenOnComplete sets whether saved files are opened automatically
func (s *Settings) SetOpenOnComplete(open bool) {
	s.app.Preferences().SetBool(KeyOpenOnComplete, open)
}

// GetLastDownloadPath returns the path of the most recently saved file
func (s *Settings) GetLastDownloadPath() string {
	return s.app.Preferences().String(KeyLastDownloadPath)
}

// SetLastDownloadPath remembers the most recently saved file
func (s *Settings) SetLastDownloadPath(path string) {
	s.app.Preferences().SetString(KeyLastDownloadPath, path)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetFormatOptions returns the selectable output formats
func (s *Settings) GetFormatOptions() []model.OutputFormat {
	return model.Formats()
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
