package audio

import (
	"context"
	"fmt"

	"github.com/zczcm85/readword/internal/pcm"
)

// Rate selects the speaking speed of a synthesis request. Spelling is
// an accelerated rate used only for single letters, so that
// letter-by-letter narration stays brisk once its padding silence is
// trimmed away.
type Rate int

const (
	RateNormal Rate = iota
	RateSlow
	RateSpelling
)

// String returns the rate name for cache keys and diagnostics.
func (r Rate) String() string {
	switch r {
	case RateSlow:
		return "slow"
	case RateSpelling:
		return "spelling"
	default:
		return "normal"
	}
}

// Request describes one unit of text to synthesize.
type Request struct {
	Text     string
	Language string // voice profile, e.g. "en" or "zh-CN"
	Rate     Rate
	Letter   bool // text is a single spelling unit rather than a word or phrase
}

// Synthesizer defines the interface for text-to-speech providers.
type Synthesizer interface {
	// Synthesize converts text into a decoded PCM buffer.
	Synthesize(ctx context.Context, req Request) (*pcm.Buffer, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Trimmer is the optional silence-trimming capability. Providers whose
// output carries silence padding implement it; providers that emit
// tightly cropped audio do not.
type Trimmer interface {
	TrimSilence(*pcm.Buffer) *pcm.Buffer
}

// Config holds common configuration for speech providers
type Config struct {
	Provider string // Provider name: "google", "openai" or "espeak"

	// Response caching
	EnableCache bool
	CacheDir    string

	// Google-specific settings
	GoogleEndpoint string // override for tests, empty means the public endpoint

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice string  // "alloy", "ash", "ballad", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer", "verse"
	OpenAISpeed float64 // 0.25 to 4.0

	// ESpeak-specific settings
	ESpeakSpeed int // base words per minute for the normal rate
}

// DefaultSynthesizerConfig returns default configuration
func DefaultSynthesizerConfig() *Config {
	return &Config{
		Provider:    "google",
		OpenAIModel: "gpt-4o-mini-tts",
		OpenAIVoice: "alloy",
		OpenAISpeed: 1.0,
		ESpeakSpeed: 150,
	}
}

// ListProviders returns the names of all known providers.
func ListProviders() []string {
	return []string{"google", "openai", "espeak"}
}

// NewSynthesizer creates the appropriate speech provider based on configuration
func NewSynthesizer(config *Config) (Synthesizer, error) {
	if config == nil {
		config = DefaultSynthesizerConfig()
	}

	var cache *Cache
	if config.EnableCache && config.CacheDir != "" {
		var err error
		cache, err = NewCache(config.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	switch config.Provider {
	case "google", "":
		return NewGoogleProvider(config, cache)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config, cache)

	case "espeak":
		return NewESpeakProvider(config)

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// SynthesizerWithFallback wraps a primary provider with a fallback option
type SynthesizerWithFallback struct {
	primary  Synthesizer
	fallback Synthesizer
}

// NewSynthesizerWithFallback creates a provider that falls back to secondary if primary fails
func NewSynthesizerWithFallback(primary, fallback Synthesizer) Synthesizer {
	return &SynthesizerWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Synthesize tries primary provider first, falls back to secondary on error
func (s *SynthesizerWithFallback) Synthesize(ctx context.Context, req Request) (*pcm.Buffer, error) {
	buf, err := s.primary.Synthesize(ctx, req)
	if err != nil {
		// Log the primary error
		fmt.Printf("Primary provider (%s) failed: %v. Falling back to %s\n",
			s.primary.Name(), err, s.fallback.Name())

		// Try fallback
		return s.fallback.Synthesize(ctx, req)
	}
	return buf, nil
}

// Name returns the provider name
func (s *SynthesizerWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", s.primary.Name(), s.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (s *SynthesizerWithFallback) IsAvailable() error {
	primaryErr := s.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := s.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

// TrimSilence forwards the trim capability when the primary provider
// has it.
func (s *SynthesizerWithFallback) TrimSilence(b *pcm.Buffer) *pcm.Buffer {
	if t, ok := s.primary.(Trimmer); ok {
		return t.TrimSilence(b)
	}
	return b
}
