// Package sheet writes answer sheets for dictation tracks: the
// narrated words with their translations, in narration order, as CSV.
package sheet

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/zczcm85/readword/internal/wordlist"
)

// GeneratorOptions configures the answer sheet export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "answers.csv",
		IncludeHeaders: true,
	}
}

// Generator creates answer sheets matching a narrated track
type Generator struct {
	options *GeneratorOptions
	entries []wordlist.Entry
}

// NewGenerator creates a new answer sheet generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		entries: make([]wordlist.Entry, 0),
	}
}

// AddEntry adds a narrated entry to the sheet
func (g *Generator) AddEntry(entry wordlist.Entry) {
	g.entries = append(g.entries, entry)
}

// Entries returns all entries added so far
func (g *Generator) Entries() []wordlist.Entry {
	return g.entries
}

// GenerateCSV creates the answer sheet CSV file
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if g.options.IncludeHeaders {
		headers := []string{"Word", "Translation"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, entry := range g.entries {
		record := []string{
			entry.Word,
			entry.Translation,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}

	return nil
}

// Stats returns statistics about the collected entries
func (g *Generator) Stats() (total, translated int) {
	total = len(g.entries)

	for _, entry := range g.entries {
		if entry.Translation != "" {
			translated++
		}
	}

	return
}
