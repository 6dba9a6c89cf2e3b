package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// DecodeWAV decodes a RIFF/WAV byte stream into a mono Buffer.
// Multi-channel input is downmixed by averaging the channels.
func DecodeWAV(data []byte) (*Buffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV data")
	}

	pcmBuf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV data: %w", err)
	}
	if pcmBuf.Format == nil || pcmBuf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("WAV data has no format information")
	}

	channels := pcmBuf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	frames := len(pcmBuf.Data) / channels
	samples := make([]int16, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += toInt16(pcmBuf.Data[i*channels+c], pcmBuf.SourceBitDepth)
		}
		samples[i] = int16(sum / channels)
	}

	return &Buffer{samples: samples, rate: pcmBuf.Format.SampleRate}, nil
}

// toInt16 scales a decoded sample from its source bit depth to 16 bit.
func toInt16(v, bitDepth int) int {
	switch bitDepth {
	case 8:
		// 8-bit WAV samples are unsigned
		return (v - 128) << 8
	case 24:
		return v >> 8
	case 32:
		return v >> 16
	default:
		return v
	}
}

// EncodeWAV writes the buffer as a 16-bit mono RIFF/WAV stream.
func EncodeWAV(b *Buffer, w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, b.SampleRate(), 16, 1, 1)

	data := make([]int, b.Len())
	for i, s := range b.samples {
		data[i] = int(s)
	}

	pcmBuf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: b.SampleRate()},
		SourceBitDepth: 16,
	}
	if err := enc.Write(pcmBuf); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV data: %w", err)
	}
	return nil
}

// DecodeMP3 decodes an MPEG audio byte stream into a mono Buffer. The
// decoder always emits 16-bit stereo frames; the two channels are
// averaged into one.
func DecodeMP3(data []byte) (*Buffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3 data: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to read MP3 samples: %w", err)
	}

	frames := len(raw) / 4
	samples := make([]int16, frames)
	for i := 0; i < frames; i++ {
		left := int16(uint16(raw[i*4]) | uint16(raw[i*4+1])<<8)
		right := int16(uint16(raw[i*4+2]) | uint16(raw[i*4+3])<<8)
		samples[i] = int16((int(left) + int(right)) / 2)
	}

	return &Buffer{samples: samples, rate: dec.SampleRate()}, nil
}
