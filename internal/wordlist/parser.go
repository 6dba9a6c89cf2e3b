package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry represents a word with optional translation
type Entry struct {
	Word        string
	Translation string
}

// Parse reads word entries from r, one per line
// Supported formats:
// - word only: "cat" (translation resolved later)
// - with translation: "cat,猫" (translation kept as supplied)
// Full-width commas count as separators, and only the first comma
// splits the line, so translations may contain commas.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		line = strings.ReplaceAll(line, "，", ",")

		parts := strings.SplitN(line, ",", 2)
		entry := Entry{Word: strings.TrimSpace(parts[0])}
		if len(parts) == 2 {
			entry.Translation = strings.TrimSpace(parts[1])
		}

		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	return entries, nil
}

// ReadFile reads word entries from a file, or from stdin when path
// is "-".
func ReadFile(path string) ([]Entry, error) {
	if path == "-" {
		return Parse(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
