package pcm

import (
	"reflect"
	"testing"
	"time"
)

// paddedTone builds silence + tone + silence at 24kHz.
func paddedTone(lead, tail time.Duration, toneSamples int) *Buffer {
	tone := makeTone(8000, toneSamples, 24000).samples
	head := Silence(lead, 24000).samples
	end := Silence(tail, 24000).samples

	samples := append(append(append([]int16{}, head...), tone...), end...)
	return NewBuffer(samples, 24000)
}

func TestTrimSilence(t *testing.T) {
	// 50ms lead and 30ms tail align exactly with the 10ms scan window.
	in := paddedTone(50*time.Millisecond, 30*time.Millisecond, 2400)

	got := TrimSilence(in)
	if got.Len() != 2400 {
		t.Errorf("TrimSilence length = %d, want 2400", got.Len())
	}
	if got.Samples()[0] != 8000 {
		t.Errorf("trimmed buffer starts with %d, want tone sample", got.Samples()[0])
	}
}

func TestTrimSilenceIdempotent(t *testing.T) {
	in := paddedTone(70*time.Millisecond, 40*time.Millisecond, 1200)

	once := TrimSilence(in)
	twice := TrimSilence(once)

	if !reflect.DeepEqual(once.Samples(), twice.Samples()) {
		t.Errorf("second trim changed the buffer: %d -> %d samples", once.Len(), twice.Len())
	}
}

func TestTrimSilenceAllSilent(t *testing.T) {
	in := Silence(200*time.Millisecond, 24000)

	got := TrimSilence(in)
	if !got.Empty() {
		t.Errorf("fully silent buffer should trim to empty, got %d samples", got.Len())
	}

	// Trimming the empty result must stay a no-op.
	again := TrimSilence(got)
	if !again.Empty() {
		t.Errorf("re-trimming empty buffer produced %d samples", again.Len())
	}
}

func TestTrimSilenceThreshold(t *testing.T) {
	// -40 dBFS corresponds to a peak just under 328 on 16-bit samples.
	tests := []struct {
		name      string
		amplitude int16
		trimmed   bool
	}{
		{"below threshold", 300, true},
		{"above threshold", 400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := makeTone(tt.amplitude, 2400, 24000)
			got := TrimSilence(in)
			if tt.trimmed && !got.Empty() {
				t.Errorf("amplitude %d should trim to empty, got %d samples", tt.amplitude, got.Len())
			}
			if !tt.trimmed && got.Len() != in.Len() {
				t.Errorf("amplitude %d should be kept, got %d of %d samples", tt.amplitude, got.Len(), in.Len())
			}
		})
	}
}

func TestTrimSilenceKeepsInteriorSilence(t *testing.T) {
	tone := makeTone(8000, 480, 24000)
	gap := Silence(100*time.Millisecond, 24000)
	in := Concat(Silence(50*time.Millisecond, 24000), tone, gap, tone)

	got := TrimSilence(in)
	want := tone.Len()*2 + gap.Len()
	if got.Len() != want {
		t.Errorf("TrimSilence length = %d, want %d (interior silence must survive)", got.Len(), want)
	}
}
