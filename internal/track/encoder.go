package track

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/zczcm85/readword/internal/pcm"
)

// Encoder converts assembled PCM audio into MP3 bytes using ffmpeg,
// staging the signal through a temporary WAV file.
type Encoder struct {
	ffmpegPath string
}

// NewEncoder creates an encoder using ffmpeg from PATH.
func NewEncoder() *Encoder {
	return &Encoder{ffmpegPath: "ffmpeg"}
}

// IsAvailable checks if ffmpeg is installed
func (e *Encoder) IsAvailable() error {
	if err := exec.Command(e.ffmpegPath, "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}
	return nil
}

// EncodeMP3 encodes the buffer as MP3.
func (e *Encoder) EncodeMP3(ctx context.Context, buf *pcm.Buffer) ([]byte, error) {
	if buf.Empty() {
		return nil, fmt.Errorf("cannot encode empty audio")
	}

	tempDir, err := os.MkdirTemp("", "readword-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	wavFile := filepath.Join(tempDir, "track.wav")
	mp3File := filepath.Join(tempDir, "track.mp3")

	f, err := os.Create(wavFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary WAV file: %w", err)
	}
	if err := pcm.EncodeWAV(buf, f); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize temporary WAV file: %w", err)
	}

	if err := e.convertWAVToMP3(ctx, wavFile, mp3File); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(mp3File)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted MP3: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ffmpeg produced an empty file")
	}
	return data, nil
}

// convertWAVToMP3 converts a WAV file to MP3 using ffmpeg
func (e *Encoder) convertWAVToMP3(ctx context.Context, wavFile, mp3File string) error {
	if err := e.IsAvailable(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, e.ffmpegPath, "-i", wavFile, "-acodec", "mp3", "-y", mp3File)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
