package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPaste    = "📋"
	IconList     = "☰"
	IconDownload = "⬇"
	IconLink     = "🔗"
	IconError    = "❌"
	IconMusic    = "🎵"
	IconVideo    = "🎬"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	PercentFormat      = "%d%%"
)

// Layout sizing
const (
	TimeEntryWidth    float32 = 110
	HistoryListHeight float32 = 220

	WindowWidth  float32 = 720
	WindowHeight float32 = 760
)

// Timeouts for calls started from the UI
const (
	SubmitTimeout   = 45 * time.Second
	CancelTimeout   = 15 * time.Second
	DownloadTimeout = 10 * time.Minute
	PlaylistTimeout = 60 * time.Second
)

// Pacifying messages shown while a job runs, by status category. They rotate
// on every status update.
var PacifyingMessages = map[string][]string{
	"created": {
		"🎵 Preparing to extract your snippet...",
		"🚀 Getting ready to process your request...",
		"⚡ Initializing extraction...",
	},
	"processing": {
		"🎬 Fetching video information...",
		"📡 Connecting to YouTube servers...",
		"🔍 Analyzing video content...",
	},
	"downloading": {
		"⬇️ Downloading media stream...",
		"🌐 Fetching data from YouTube...",
		"📥 Retrieving content...",
	},
	"trimming": {
		"✂️ Trimming to your specified range...",
		"🎚️ Processing snippet...",
		"🔧 Finalizing your clip...",
	},
	"completed": {
		"✅ Your snippet is ready!",
		"🎉 Extraction completed successfully!",
		"✨ Your file is prepared!",
	},
	"failed": {
		"❌ Something went wrong...",
		"😔 Extraction failed, please try again",
		"⚠️ Unable to process this request",
	},
	"cancelled": {
		"🛑 Extraction cancelled",
	},
}
