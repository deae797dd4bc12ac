package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "sermon.mp3", "sermon.mp3"},
		{"separators", "a/b\\c.mp3", "a_b_c.mp3"},
		{"reserved characters", `what? "now" <1>|*.wav`, "what_ _now_ _1___.wav"},
		{"dots only", "..", "download"},
		{"empty", "   ", "download"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	first, err := UniquePath(dir, "clip.mp3")
	if err != nil {
		t.Fatalf("UniquePath failed: %v", err)
	}
	if first != filepath.Join(dir, "clip.mp3") {
		t.Errorf("unexpected path %s", first)
	}

	if err := os.WriteFile(first, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := UniquePath(dir, "clip.mp3")
	if err != nil {
		t.Fatalf("UniquePath failed: %v", err)
	}
	if second != filepath.Join(dir, "clip (1).mp3") {
		t.Errorf("expected numbered path, got %s", second)
	}

	if err := os.WriteFile(second, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	third, _ := UniquePath(dir, "clip.mp3")
	if third != filepath.Join(dir, "clip (2).mp3") {
		t.Errorf("expected clip (2).mp3, got %s", third)
	}
}

func withRunner(t *testing.T) *[][]string {
	t.Helper()
	var calls [][]string
	orig := commandRunner
	commandRunner = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	}
	t.Cleanup(func() { commandRunner = orig })
	return &calls
}

func TestOpenURL(t *testing.T) {
	calls := withRunner(t)

	if err := OpenURL("ftp://example.com/file"); err == nil {
		t.Error("expected error for non-http link")
	}
	if len(*calls) != 0 {
		t.Fatalf("no command should run for rejected links, got %v", *calls)
	}

	err := OpenURL("https://example.com/download/abc")
	switch runtime.GOOS {
	case OSDarwin, OSWindows, OSLinux:
		if err != nil {
			t.Fatalf("OpenURL failed: %v", err)
		}
		if len(*calls) != 1 {
			t.Fatalf("expected one command, got %v", *calls)
		}
		last := (*calls)[0]
		if last[len(last)-1] != "https://example.com/download/abc" {
			t.Errorf("link not passed to command: %v", last)
		}
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	calls := withRunner(t)
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.mp3")

	if err := OpenFileInManager(nonExistentFile); err == nil {
		t.Error("Expected error for non-existent file")
	}
	if err := OpenFileWithDefaultApp(nonExistentFile); err == nil {
		t.Error("Expected error for non-existent file")
	}
	if len(*calls) != 0 {
		t.Errorf("no command should run, got %v", *calls)
	}
}

func TestOpenFileWithDefaultApp_ExistingFile(t *testing.T) {
	if runtime.GOOS != OSLinux && runtime.GOOS != OSDarwin {
		t.Skip("command shape checked on linux and darwin only")
	}
	calls := withRunner(t)

	file := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := OpenFileWithDefaultApp(file); err != nil {
		t.Fatalf("OpenFileWithDefaultApp failed: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0][len((*calls)[0])-1] != file {
		t.Errorf("unexpected commands %v", *calls)
	}
}
