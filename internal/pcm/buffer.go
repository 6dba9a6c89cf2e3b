// Package pcm provides the decoded audio buffer type shared by the
// synthesis and assembly stages, plus the sequencing primitives
// (silence, concatenation, resampling, time compression) needed to
// build dictation tracks.
package pcm

import (
	"time"
)

// DefaultSampleRate is the pipeline-wide sample rate. Provider output
// is resampled to this rate before buffers are concatenated.
const DefaultSampleRate = 24000

// Buffer holds decoded mono 16-bit PCM samples at a fixed sample rate.
// Buffers are not mutated in place: trim, concat, resample and speed
// operations all return new buffers.
type Buffer struct {
	samples []int16
	rate    int
}

// NewBuffer wraps samples in a Buffer. The Buffer takes ownership of
// the slice; callers must not modify it afterwards.
func NewBuffer(samples []int16, rate int) *Buffer {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Buffer{samples: samples, rate: rate}
}

// Silence returns a buffer of d silence at the given sample rate.
func Silence(d time.Duration, rate int) *Buffer {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	if d < 0 {
		d = 0
	}
	n := int(int64(rate) * int64(d) / int64(time.Second))
	return &Buffer{samples: make([]int16, n), rate: rate}
}

// SampleRate returns the buffer's sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.rate
}

// Len returns the number of samples in the buffer.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.samples)
}

// Empty reports whether the buffer contains no samples.
func (b *Buffer) Empty() bool {
	return b.Len() == 0
}

// Duration returns the playback duration of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.Len() == 0 {
		return 0
	}
	return time.Duration(int64(b.Len()) * int64(time.Second) / int64(b.rate))
}

// Samples returns a copy of the buffer's samples.
func (b *Buffer) Samples() []int16 {
	if b == nil {
		return nil
	}
	out := make([]int16, len(b.samples))
	copy(out, b.samples)
	return out
}

// Concat joins buffers back-to-back into a new buffer. Nil and empty
// buffers are skipped. The result uses the sample rate of the first
// non-empty buffer; later buffers at a different rate are resampled
// to match before joining.
func Concat(bufs ...*Buffer) *Buffer {
	rate := 0
	total := 0
	for _, b := range bufs {
		if b.Len() == 0 {
			continue
		}
		if rate == 0 {
			rate = b.rate
		}
		total += b.Len()
	}
	if rate == 0 {
		return &Buffer{rate: DefaultSampleRate}
	}

	samples := make([]int16, 0, total)
	for _, b := range bufs {
		if b.Len() == 0 {
			continue
		}
		if b.rate != rate {
			b = Resample(b, rate)
		}
		samples = append(samples, b.samples...)
	}
	return &Buffer{samples: samples, rate: rate}
}

// Resample converts a buffer to the target sample rate using linear
// interpolation between neighboring samples.
func Resample(b *Buffer, rate int) *Buffer {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	if b.Len() == 0 {
		return &Buffer{rate: rate}
	}
	if b.rate == rate {
		return b
	}

	ratio := float64(b.rate) / float64(rate)
	n := int(float64(b.Len()) / ratio)
	if n < 1 {
		n = 1
	}

	out := make([]int16, n)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= b.Len()-1 {
			out[i] = b.samples[b.Len()-1]
			continue
		}
		frac := pos - float64(idx)
		a := float64(b.samples[idx])
		c := float64(b.samples[idx+1])
		out[i] = int16(a + (c-a)*frac)
	}
	return &Buffer{samples: out, rate: rate}
}

// Speed time-compresses (factor > 1) or stretches (factor < 1) a
// buffer while keeping its sample rate.
func Speed(b *Buffer, factor float64) *Buffer {
	if factor <= 0 || factor == 1 || b.Len() == 0 {
		return b
	}

	n := int(float64(b.Len()) / factor)
	if n < 1 {
		n = 1
	}

	out := make([]int16, n)
	for i := range out {
		pos := float64(i) * factor
		idx := int(pos)
		if idx >= b.Len()-1 {
			out[i] = b.samples[b.Len()-1]
			continue
		}
		frac := pos - float64(idx)
		a := float64(b.samples[idx])
		c := float64(b.samples[idx+1])
		out[i] = int16(a + (c-a)*frac)
	}
	return &Buffer{samples: out, rate: b.rate}
}
