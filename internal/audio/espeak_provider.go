package audio

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/zczcm85/readword/internal/pcm"
)

// Words-per-minute settings for the three rates. espeak-ng accepts
// 80 to 450.
const (
	espeakDefaultWPM  = 150
	espeakSlowWPM     = 100
	espeakSpellingWPM = 230
)

// ESpeakProvider implements Synthesizer using the espeak-ng binary.
// It needs no network access and emits WAV audio on stdout.
type ESpeakProvider struct {
	baseSpeed int
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *Config) (Synthesizer, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}

	speed := config.ESpeakSpeed
	if speed == 0 {
		speed = espeakDefaultWPM
	}
	return &ESpeakProvider{baseSpeed: clampSpeed(speed)}, nil
}

// Synthesize runs espeak-ng and decodes the WAV stream it writes to
// stdout.
func (p *ESpeakProvider) Synthesize(ctx context.Context, req Request) (*pcm.Buffer, error) {
	if err := ValidateText(req.Text); err != nil {
		return nil, err
	}

	args := []string{
		"-v", espeakVoice(req.Language),
		"-s", fmt.Sprintf("%d", p.speed(req.Rate)),
		"--stdout",
		req.Text,
	}

	cmd := exec.CommandContext(ctx, "espeak-ng", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("espeak-ng failed: %w", err)
	}

	buf, err := pcm.DecodeWAV(output)
	if err != nil {
		return nil, fmt.Errorf("espeak-ng produced undecodable audio: %w", err)
	}
	return buf, nil
}

// speed maps a request rate onto words per minute.
func (p *ESpeakProvider) speed(rate Rate) int {
	switch rate {
	case RateSlow:
		return espeakSlowWPM
	case RateSpelling:
		return espeakSpellingWPM
	default:
		return p.baseSpeed
	}
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	return checkESpeakInstalled()
}

// clampSpeed keeps words per minute inside the range espeak-ng accepts.
func clampSpeed(speed int) int {
	if speed < 80 {
		return 80
	}
	if speed > 450 {
		return 450
	}
	return speed
}

// espeakVoice maps a locale tag onto an espeak-ng voice name.
func espeakVoice(language string) string {
	base := strings.ToLower(language)
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}

	switch base {
	case "zh":
		return "cmn" // Mandarin voice
	case "":
		return "en"
	default:
		return base
	}
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	cmd := exec.Command("espeak-ng", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}
