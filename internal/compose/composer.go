// Package compose turns single word list entries into narration
// blocks: the word repeated, spelled out letter by letter, read once
// more, then its translation.
package compose

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/zczcm85/readword/internal/audio"
	"github.com/zczcm85/readword/internal/pcm"
	"github.com/zczcm85/readword/internal/wordlist"
)

// failureSilence stands in for audio that could not be synthesized so
// the dictation keeps its rhythm.
const failureSilence = 500 * time.Millisecond

// Options control pacing and voices for a word block.
type Options struct {
	RepeatCount int           // how often the word is read before spelling
	SlowSpeed   bool          // read the word at the slow rate
	SpellPause  time.Duration // gap between spelled letters
	WordPause   time.Duration // gap between narration sections
	SourceLang  string        // voice for words and letters
	TargetLang  string        // voice for translations
	SampleRate  int           // sample rate of composed blocks
}

// normalize clamps options into usable ranges.
func (o *Options) normalize() {
	if o.RepeatCount < 1 {
		o.RepeatCount = 1
	}
	if o.SpellPause < 0 {
		o.SpellPause = 0
	}
	if o.WordPause < 0 {
		o.WordPause = 0
	}
	if o.SourceLang == "" {
		o.SourceLang = "en"
	}
	if o.TargetLang == "" {
		o.TargetLang = "zh-CN"
	}
	if o.SampleRate <= 0 {
		o.SampleRate = pcm.DefaultSampleRate
	}
}

// Warning records a synthesis failure inside a word block. The failed
// text was replaced with silence.
type Warning struct {
	Word string // the entry being narrated
	Text string // what failed to synthesize: the word, a letter, or the translation
	Err  error
}

// Composer builds narration blocks through a speech synthesizer.
type Composer struct {
	synth audio.Synthesizer
	opts  Options
}

// New creates a Composer. Options are clamped into usable ranges.
func New(synth audio.Synthesizer, opts Options) *Composer {
	opts.normalize()
	return &Composer{synth: synth, opts: opts}
}

// Compose builds the narration block for one entry: the word repeated
// back to back, a pause, each letter with short gaps, a pause, the
// word again, a pause, the translation when present, and a double
// pause to close. Synthesis failures degrade to silence and are
// reported as warnings, never errors.
func (c *Composer) Compose(ctx context.Context, entry wordlist.Entry) (*pcm.Buffer, []Warning) {
	if entry.Word == "" {
		return pcm.NewBuffer(nil, c.opts.SampleRate), nil
	}

	var warnings []Warning
	wordPause := pcm.Silence(c.opts.WordPause, c.opts.SampleRate)

	rate := audio.RateNormal
	if c.opts.SlowSpeed {
		rate = audio.RateSlow
	}

	// One synthesis serves every read of the word.
	wordAudio := c.speak(ctx, audio.Request{
		Text:     entry.Word,
		Language: c.opts.SourceLang,
		Rate:     rate,
	}, entry.Word, &warnings)

	var segments []*pcm.Buffer
	for i := 0; i < c.opts.RepeatCount; i++ {
		segments = append(segments, wordAudio)
	}
	segments = append(segments, wordPause)

	segments = append(segments, c.spell(ctx, entry.Word, &warnings))
	segments = append(segments, wordPause)

	segments = append(segments, wordAudio)
	segments = append(segments, wordPause)

	if entry.Translation != "" {
		segments = append(segments, c.speak(ctx, audio.Request{
			Text:     entry.Translation,
			Language: c.opts.TargetLang,
			Rate:     audio.RateNormal,
		}, entry.Word, &warnings))
	}

	segments = append(segments, wordPause, wordPause)

	return pcm.Concat(segments...), warnings
}

// spell narrates the word's letters at the spelling rate, separated by
// short gaps. Non-letter runes are skipped.
func (c *Composer) spell(ctx context.Context, word string, warnings *[]Warning) *pcm.Buffer {
	spellPause := pcm.Silence(c.opts.SpellPause, c.opts.SampleRate)

	var segments []*pcm.Buffer
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if len(segments) > 0 {
			segments = append(segments, spellPause)
		}
		segments = append(segments, c.speak(ctx, audio.Request{
			Text:     string(r),
			Language: c.opts.SourceLang,
			Rate:     audio.RateSpelling,
			Letter:   true,
		}, word, warnings))
	}

	if len(segments) == 0 {
		return pcm.NewBuffer(nil, c.opts.SampleRate)
	}
	return pcm.Concat(segments...)
}

// speak synthesizes one request at the block sample rate. On failure
// it records a warning and returns silence in place of the audio.
func (c *Composer) speak(ctx context.Context, req audio.Request, word string, warnings *[]Warning) *pcm.Buffer {
	buf, err := c.synth.Synthesize(ctx, req)
	if err == nil && buf.Empty() {
		err = fmt.Errorf("no audio data received")
	}
	if err != nil {
		*warnings = append(*warnings, Warning{Word: word, Text: req.Text, Err: err})
		return pcm.Silence(failureSilence, c.opts.SampleRate)
	}

	if t, ok := c.synth.(audio.Trimmer); ok {
		buf = t.TrimSilence(buf)
	}
	return pcm.Resample(buf, c.opts.SampleRate)
}
