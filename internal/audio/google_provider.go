package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/zczcm85/readword/internal/pcm"
)

const (
	// googleTTSEndpoint is the public speech endpoint behind Google
	// Translate's listen button.
	googleTTSEndpoint = "https://translate.google.com/translate_tts"

	googleTTSTimeout = 30 * time.Second

	// googleSlowSpeed is the ttsspeed parameter value for slow reads.
	googleSlowSpeed = "0.24"

	// spellingSpeedup is the time-compression factor applied to letter
	// audio. The endpoint itself only knows normal and slow.
	spellingSpeedup = 1.3
)

// GoogleProvider implements Synthesizer using the translate_tts
// endpoint. Responses are MP3 and carry silence padding, so the
// provider also implements the Trimmer capability.
type GoogleProvider struct {
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	endpoint string
	cache    *Cache
}

// NewGoogleProvider creates a new Google translate_tts provider
func NewGoogleProvider(config *Config, cache *Cache) (Synthesizer, error) {
	endpoint := config.GoogleEndpoint
	if endpoint == "" {
		endpoint = googleTTSEndpoint
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "google-tts",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &GoogleProvider{
		client:   &http.Client{Timeout: googleTTSTimeout},
		breaker:  breaker,
		endpoint: endpoint,
		cache:    cache,
	}, nil
}

// Synthesize fetches MP3 audio for the text and decodes it to PCM.
func (p *GoogleProvider) Synthesize(ctx context.Context, req Request) (*pcm.Buffer, error) {
	if err := ValidateText(req.Text); err != nil {
		return nil, err
	}

	data, err := p.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	buf, err := pcm.DecodeMP3(data)
	if err != nil {
		return nil, fmt.Errorf("google TTS returned undecodable audio: %w", err)
	}

	if req.Rate == RateSpelling {
		buf = pcm.Speed(buf, spellingSpeedup)
	}
	return buf, nil
}

// fetch returns the raw MP3 response, consulting the cache first.
func (p *GoogleProvider) fetch(ctx context.Context, req Request) ([]byte, error) {
	if p.cache != nil {
		if data, ok := p.cache.Get(p.Name(), req, "mp3"); ok {
			return data, nil
		}
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.download(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	data := result.([]byte)

	if p.cache != nil {
		_ = p.cache.Put(p.Name(), req, "mp3", data) // Ignore cache errors
	}
	return data, nil
}

// download performs one HTTP round-trip against the endpoint.
func (p *GoogleProvider) download(ctx context.Context, req Request) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", req.Language)
	params.Set("q", req.Text)
	params.Set("total", "1")
	params.Set("idx", "0")
	params.Set("textlen", strconv.Itoa(len(req.Text)))
	if req.Rate == RateSlow {
		params.Set("ttsspeed", googleSlowSpeed)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("google TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google TTS returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from google TTS")
	}
	return data, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable checks if the provider is usable. The endpoint needs no
// credentials, so only a tripped breaker makes it unavailable.
func (p *GoogleProvider) IsAvailable() error {
	if p.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("google TTS circuit breaker is open")
	}
	return nil
}

// TrimSilence removes the silence padding the endpoint adds around
// synthesized speech.
func (p *GoogleProvider) TrimSilence(b *pcm.Buffer) *pcm.Buffer {
	return pcm.TrimSilence(b)
}
