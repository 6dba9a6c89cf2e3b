package audio

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/zczcm85/readword/internal/pcm"
)

const (
	// Rate multipliers applied on top of the configured base speed.
	openAISlowFactor     = 0.75
	openAISpellingFactor = 1.25
)

// OpenAIProvider implements Synthesizer for OpenAI TTS. Its output is
// tightly cropped, so it does not implement the Trimmer capability.
type OpenAIProvider struct {
	client *openai.Client
	config *Config
	cache  *Cache
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config, cache *Cache) (Synthesizer, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
		cache:  cache,
	}, nil
}

// Synthesize generates audio using OpenAI TTS and decodes it to PCM.
func (p *OpenAIProvider) Synthesize(ctx context.Context, req Request) (*pcm.Buffer, error) {
	if err := ValidateText(req.Text); err != nil {
		return nil, err
	}

	data, err := p.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	buf, err := pcm.DecodeWAV(data)
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS returned undecodable audio: %w", err)
	}
	return buf, nil
}

// fetch returns the raw WAV response, consulting the cache first.
func (p *OpenAIProvider) fetch(ctx context.Context, req Request) ([]byte, error) {
	if p.cache != nil {
		if data, ok := p.cache.Get(p.Name(), req, "wav"); ok {
			return data, nil
		}
	}

	speechReq := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.speed(req.Rate),
		ResponseFormat: openai.SpeechResponseFormatWav,
	}

	response, err := p.client.CreateSpeech(ctx, speechReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	if p.cache != nil {
		_ = p.cache.Put(p.Name(), req, "wav", data) // Ignore cache errors
	}
	return data, nil
}

// speed maps a request rate onto the API's speed parameter.
func (p *OpenAIProvider) speed(rate Rate) float64 {
	speed := p.config.OpenAISpeed
	if speed == 0 {
		speed = 1.0
	}

	switch rate {
	case RateSlow:
		speed *= openAISlowFactor
	case RateSpelling:
		speed *= openAISpellingFactor
	}

	// The API accepts 0.25 to 4.0.
	if speed < 0.25 {
		speed = 0.25
	} else if speed > 4.0 {
		speed = 4.0
	}
	return speed
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// We could make a test API call here, but that would use credits
	// For now, just check that we have a key
	return nil
}
