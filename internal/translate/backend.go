package translate

import (
	"context"
	"fmt"
	"strings"
)

// Backend defines the interface for translation services.
type Backend interface {
	// Translate converts text from the source language into the target
	// locale.
	Translate(ctx context.Context, text, source, target string) (string, error)

	// Name returns the backend name
	Name() string
}

// Config holds common configuration for translation backends
type Config struct {
	Backend string // Backend name: "google", "openai" or "gemini"

	Source   string // source language of the word list, e.g. "en"
	Target   string // locale translations are requested in, e.g. "zh-CN"
	Fallback string // locale tried when the target yields nothing, e.g. "zh"

	// Google-specific settings
	GoogleEndpoint string // override for tests, empty means the public endpoint

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:  "google",
		Source:   "en",
		Target:   "zh-CN",
		Fallback: "zh",
	}
}

// ListBackends returns the names of all known backends.
func ListBackends() []string {
	return []string{"google", "openai", "gemini"}
}

// NewBackend creates the appropriate translation backend based on configuration
func NewBackend(config *Config) (Backend, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Backend {
	case "google", "":
		return NewGoogleBackend(config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIBackend(config)

	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiBackend(config)

	default:
		return nil, fmt.Errorf("unknown translation backend: %s", config.Backend)
	}
}

// languageName maps common locale tags onto names chat models resolve
// more reliably than raw tags.
func languageName(tag string) string {
	switch strings.ToLower(tag) {
	case "en":
		return "English"
	case "zh", "zh-cn":
		return "Simplified Chinese"
	case "zh-tw":
		return "Traditional Chinese"
	case "ja":
		return "Japanese"
	case "ko":
		return "Korean"
	case "fr":
		return "French"
	case "de":
		return "German"
	case "es":
		return "Spanish"
	default:
		return tag
	}
}
