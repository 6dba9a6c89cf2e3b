package sheet

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/zczcm85/readword/internal/wordlist"
)

func TestDefaultGeneratorOptions(t *testing.T) {
	opts := DefaultGeneratorOptions()

	if opts.OutputPath != "answers.csv" {
		t.Errorf("Expected output path 'answers.csv', got '%s'", opts.OutputPath)
	}

	if !opts.IncludeHeaders {
		t.Error("Expected IncludeHeaders to be true")
	}
}

func TestNewGenerator(t *testing.T) {
	// Test with nil options
	gen := NewGenerator(nil)
	if gen == nil {
		t.Fatal("NewGenerator returned nil")
	}
	if gen.options == nil {
		t.Error("Generator options should not be nil")
	}

	// Test with custom options
	opts := &GeneratorOptions{
		OutputPath: "custom.csv",
	}
	gen = NewGenerator(opts)
	if gen.options.OutputPath != "custom.csv" {
		t.Errorf("Expected custom output path, got '%s'", gen.options.OutputPath)
	}
}

func TestAddEntry(t *testing.T) {
	gen := NewGenerator(nil)

	gen.AddEntry(wordlist.Entry{Word: "cat", Translation: "猫"})

	if len(gen.entries) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(gen.entries))
	}

	if gen.entries[0].Word != "cat" {
		t.Errorf("Expected word 'cat', got '%s'", gen.entries[0].Word)
	}
}

func TestGenerateCSV(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "answers.csv")
	gen := NewGenerator(&GeneratorOptions{
		OutputPath:     outputPath,
		IncludeHeaders: true,
	})

	gen.AddEntry(wordlist.Entry{Word: "cat", Translation: "猫"})
	gen.AddEntry(wordlist.Entry{Word: "dog"})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open generated CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse generated CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 rows including header, got %d", len(records))
	}

	if records[0][0] != "Word" || records[0][1] != "Translation" {
		t.Errorf("Unexpected headers: %v", records[0])
	}
	if records[1][0] != "cat" || records[1][1] != "猫" {
		t.Errorf("Unexpected first row: %v", records[1])
	}
	if records[2][0] != "dog" || records[2][1] != "" {
		t.Errorf("Unexpected second row: %v", records[2])
	}
}

func TestGenerateCSVWithoutHeaders(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "answers.csv")
	gen := NewGenerator(&GeneratorOptions{
		OutputPath: outputPath,
	})

	gen.AddEntry(wordlist.Entry{Word: "cat", Translation: "猫"})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open generated CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse generated CSV: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("Expected 1 row without header, got %d", len(records))
	}
	if records[0][0] != "cat" {
		t.Errorf("Unexpected row: %v", records[0])
	}
}

func TestGenerateCSVInvalidPath(t *testing.T) {
	gen := NewGenerator(&GeneratorOptions{
		OutputPath: "/nonexistent/path/answers.csv",
	})

	if err := gen.GenerateCSV(); err == nil {
		t.Error("GenerateCSV() expected error for invalid path")
	}
}

func TestStats(t *testing.T) {
	gen := NewGenerator(nil)

	gen.AddEntry(wordlist.Entry{Word: "cat", Translation: "猫"})
	gen.AddEntry(wordlist.Entry{Word: "dog"})
	gen.AddEntry(wordlist.Entry{Word: "owl", Translation: "猫头鹰"})

	total, translated := gen.Stats()
	if total != 3 {
		t.Errorf("Expected 3 total entries, got %d", total)
	}
	if translated != 2 {
		t.Errorf("Expected 2 translated entries, got %d", translated)
	}
}
