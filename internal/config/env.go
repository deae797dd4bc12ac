package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ytget/yt-snippet/internal/api"
	"github.com/ytget/yt-snippet/internal/platform"
)

// Environment variables read by Load
const (
	EnvAPIBase      = "SNIPPET_API_BASE"
	EnvPollInterval = "SNIPPET_POLL_INTERVAL"
	EnvDebounce     = "SNIPPET_DEBOUNCE"
	EnvHTTPTimeout  = "SNIPPET_HTTP_TIMEOUT"
	EnvHistoryDB    = "SNIPPET_HISTORY_DB"
	EnvDownloadDir  = "SNIPPET_DOWNLOAD_DIR"
)

// DefaultDebounce is the metadata lookup delay
const DefaultDebounce = 500 * time.Millisecond

// Config holds the headless configuration used by the command line client
type Config struct {
	APIBaseURL   string
	PollInterval time.Duration
	Debounce     time.Duration
	HTTPTimeout  time.Duration
	HistoryDB    string
	DownloadDir  string
}

// Load reads .env files (missing files are skipped) and then the environment.
// With no files given it looks for ".env" in the working directory. Variables
// already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		APIBaseURL:   strings.TrimRight(getEnv(EnvAPIBase, api.DefaultBaseURL), "/"),
		PollInterval: getEnvAsDuration(EnvPollInterval, DefaultPollIntervalMs*time.Millisecond),
		Debounce:     getEnvAsDuration(EnvDebounce, DefaultDebounce),
		HTTPTimeout:  getEnvAsDuration(EnvHTTPTimeout, api.DefaultTimeout),
		HistoryDB:    getEnv(EnvHistoryDB, defaultHistoryDB()),
		DownloadDir:  getEnv(EnvDownloadDir, defaultDownloadDir()),
	}
	return cfg, cfg.Validate()
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("%s must be an http(s) URL, got %q", EnvAPIBase, c.APIBaseURL)
	}
	if c.PollInterval < MinPollIntervalMs*time.Millisecond {
		return fmt.Errorf("%s must be at least %dms", EnvPollInterval, MinPollIntervalMs)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("%s must be positive", EnvDebounce)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvHTTPTimeout)
	}
	return nil
}

func defaultHistoryDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(dir, "yt-snippet", "history.db")
}

func defaultDownloadDir() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return "."
	}
	return dir
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("2s") and bare milliseconds ("2000")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
