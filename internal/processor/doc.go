// Package processor contains the core business logic for generating
// dictation tracks. It orchestrates word list parsing, translation
// resolution, speech synthesis, track assembly and answer sheet export.
// This package serves as the main coordinator between all other components.
package processor
