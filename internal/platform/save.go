package platform

import (
	"fmt"
	"io"
	"os"
)

// TempFilePattern names partial downloads inside the target directory
const TempFilePattern = ".yt-snippet-*.part"

// SaveStream writes a download into dir. write streams the content and
// returns the server-suggested file name; fallbackName is used when it is
// empty. The file is moved to a unique path only once fully written.
func SaveStream(dir, fallbackName string, write func(w io.Writer) (string, error)) (string, error) {
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, TempFilePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	name, werr := write(tmp)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(tmpPath)
		return "", werr
	}

	if name == "" {
		name = fallbackName
	}
	path, err := UniquePath(dir, name)
	if err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}
	return path, nil
}
