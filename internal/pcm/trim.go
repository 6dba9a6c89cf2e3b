package pcm

import (
	"math"
	"time"
)

const (
	// TrimChunk is the window size used when scanning for silence.
	TrimChunk = 10 * time.Millisecond

	// SilenceThreshDB is the peak amplitude, in dBFS, below which a
	// chunk counts as silent.
	SilenceThreshDB = -40.0
)

// TrimSilence removes near-silent audio from the head and tail of a
// buffer. It scans TrimChunk windows from the start and, over the
// reversed signal, from the end, counting consecutive windows whose
// peak stays below SilenceThreshDB, and drops that many samples from
// each side. Trimming an already trimmed buffer is a no-op.
func TrimSilence(b *Buffer) *Buffer {
	if b.Len() == 0 {
		return b
	}

	chunk := int(int64(b.rate) * int64(TrimChunk) / int64(time.Second))
	if chunk < 1 {
		chunk = 1
	}

	lead := leadingSilence(b.samples, chunk)
	if lead >= len(b.samples) {
		return &Buffer{rate: b.rate}
	}

	rest := b.samples[lead:]
	tail := trailingSilence(rest, chunk)

	samples := make([]int16, len(rest)-tail)
	copy(samples, rest[:len(rest)-tail])
	return &Buffer{samples: samples, rate: b.rate}
}

// leadingSilence returns the number of samples at the head of s that
// belong to consecutive silent chunks.
func leadingSilence(s []int16, chunk int) int {
	n := 0
	for n < len(s) {
		end := n + chunk
		if end > len(s) {
			end = len(s)
		}
		if !isSilent(s[n:end]) {
			break
		}
		n = end
	}
	return n
}

// trailingSilence counts silent samples at the tail by walking the
// signal backwards in chunk-sized windows.
func trailingSilence(s []int16, chunk int) int {
	n := 0
	for n < len(s) {
		start := len(s) - n - chunk
		if start < 0 {
			start = 0
		}
		if !isSilent(s[start : len(s)-n]) {
			break
		}
		n = len(s) - start
	}
	return n
}

// isSilent reports whether the chunk's peak amplitude is below the
// silence threshold.
func isSilent(chunk []int16) bool {
	var peak int
	for _, v := range chunk {
		a := int(v)
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return true
	}
	db := 20 * math.Log10(float64(peak)/32768.0)
	return db < SilenceThreshDB
}
