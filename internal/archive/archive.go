package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveTracks moves previously generated dictation files out of the
// output directory into a timestamped archive subdirectory, so a new
// run starts from a clean slate.
func ArchiveTracks(outputDir string) error {
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		return fmt.Errorf("output directory does not exist: %s", outputDir)
	}

	var files []string
	for _, pattern := range []string{"dictation_*.mp3", "dictation_*.csv"} {
		matches, err := filepath.Glob(filepath.Join(outputDir, pattern))
		if err != nil {
			return fmt.Errorf("failed to scan output directory: %w", err)
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil
	}

	// Generate timestamp
	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(outputDir, "archive", timestamp)

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(outputDir, "archive", timestamp)
	}

	if err := os.MkdirAll(archivePath, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	for _, file := range files {
		dest := filepath.Join(archivePath, filepath.Base(file))
		if err := os.Rename(file, dest); err != nil {
			return fmt.Errorf("failed to archive %s: %w", filepath.Base(file), err)
		}
	}

	fmt.Printf("Archived %d file(s) to: %s\n", len(files), archivePath)
	return nil
}
