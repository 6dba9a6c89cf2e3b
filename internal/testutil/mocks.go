package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zczcm85/readword/internal/audio"
	"github.com/zczcm85/readword/internal/pcm"
)

// MockSynthesizer implements audio.Synthesizer for testing. Every
// successful request yields a tone of UnitDuration, so composed block
// durations are exact and easy to assert on.
type MockSynthesizer struct {
	mu           sync.Mutex
	SampleRate   int
	UnitDuration time.Duration
	Errors       map[string]error // text -> error returned instead of audio
	AvailableErr error
	Requests     []audio.Request
	Calls        []string
}

// NewMockSynthesizer returns a mock producing 100ms tones at the
// default pipeline rate.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{
		SampleRate:   pcm.DefaultSampleRate,
		UnitDuration: 100 * time.Millisecond,
	}
}

// Synthesize records the request and returns a fixed-duration tone
func (m *MockSynthesizer) Synthesize(ctx context.Context, req audio.Request) (*pcm.Buffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	m.Calls = append(m.Calls, fmt.Sprintf("%s (%s, %s)", req.Text, req.Language, req.Rate))

	if err, ok := m.Errors[req.Text]; ok {
		return nil, err
	}

	return Tone(m.UnitDuration, m.SampleRate), nil
}

// Name returns the provider name
func (m *MockSynthesizer) Name() string {
	return "mock"
}

// IsAvailable reports the configured availability
func (m *MockSynthesizer) IsAvailable() error {
	return m.AvailableErr
}

// CallCount returns how many times text was requested.
func (m *MockSynthesizer) CallCount(text string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, req := range m.Requests {
		if req.Text == text {
			count++
		}
	}
	return count
}

// MockBackend implements translate.Backend for testing
type MockBackend struct {
	mu           sync.Mutex
	Translations map[string]string
	Errors       map[string]error
	Calls        []string
}

// Translate records the call and returns the configured translation
func (m *MockBackend) Translate(ctx context.Context, text, source, target string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, fmt.Sprintf("%s (%s->%s)", text, source, target))

	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock translation of %s", text), nil
}

// Name returns the backend name
func (m *MockBackend) Name() string {
	return "mock"
}
