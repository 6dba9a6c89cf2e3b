// Package track assembles composed word blocks into a single
// dictation track and encodes it as MP3.
package track

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zczcm85/readword/internal/audio"
	"github.com/zczcm85/readword/internal/compose"
	"github.com/zczcm85/readword/internal/pcm"
	"github.com/zczcm85/readword/internal/wordlist"
)

// ErrNoAudio is returned when assembly produces no audio at all, so
// callers never write a silent zero-length file.
var ErrNoAudio = errors.New("no audio was produced for any word")

// Track is the assembled dictation audio.
type Track struct {
	Audio *pcm.Buffer
	MP3   []byte
}

// Options control track assembly.
type Options struct {
	RepeatCount int           // reads of each word before spelling, 1 to 5
	MaxWords    int           // entries kept from the front of the list, 0 means all
	SlowSpeed   bool          // read words at the slow rate
	SpellPause  time.Duration // gap between spelled letters, up to 500ms
	WordPause   time.Duration // gap between narration sections, up to 1s
	SourceLang  string        // voice for words and letters
	TargetLang  string        // voice for translations
	SampleRate  int           // track sample rate

	// Progress, when set, is called before each word is composed.
	Progress func(i, n int, word string)
}

// DefaultOptions returns the default assembly options
func DefaultOptions() Options {
	return Options{
		RepeatCount: 2,
		SpellPause:  20 * time.Millisecond,
		WordPause:   300 * time.Millisecond,
		SourceLang:  "en",
		TargetLang:  "zh-CN",
		SampleRate:  pcm.DefaultSampleRate,
	}
}

// normalize clamps options into usable ranges.
func (o *Options) normalize() {
	if o.RepeatCount < 1 {
		o.RepeatCount = 1
	}
	if o.RepeatCount > 5 {
		o.RepeatCount = 5
	}
	if o.MaxWords < 0 {
		o.MaxWords = 0
	}
	if o.SpellPause < 0 {
		o.SpellPause = 0
	}
	if o.SpellPause > 500*time.Millisecond {
		o.SpellPause = 500 * time.Millisecond
	}
	if o.WordPause < 0 {
		o.WordPause = 0
	}
	if o.WordPause > time.Second {
		o.WordPause = time.Second
	}
	if o.SampleRate <= 0 {
		o.SampleRate = pcm.DefaultSampleRate
	}
}

// Assembler builds full dictation tracks from word list entries.
type Assembler struct {
	composer *compose.Composer
	encoder  *Encoder
	opts     Options
}

// NewAssembler creates an Assembler. Options are clamped into usable
// ranges.
func NewAssembler(synth audio.Synthesizer, opts Options) *Assembler {
	opts.normalize()

	composer := compose.New(synth, compose.Options{
		RepeatCount: opts.RepeatCount,
		SlowSpeed:   opts.SlowSpeed,
		SpellPause:  opts.SpellPause,
		WordPause:   opts.WordPause,
		SourceLang:  opts.SourceLang,
		TargetLang:  opts.TargetLang,
		SampleRate:  opts.SampleRate,
	})

	return &Assembler{
		composer: composer,
		encoder:  NewEncoder(),
		opts:     opts,
	}
}

// Assemble narrates the entries in order and returns the finished
// track. Synthesis failures surface as warnings; ErrNoAudio is
// returned when nothing at all could be narrated.
func (a *Assembler) Assemble(ctx context.Context, entries []wordlist.Entry) (*Track, []compose.Warning, error) {
	buf, warnings, err := a.assembleAudio(ctx, entries)
	if err != nil {
		return nil, warnings, err
	}

	mp3, err := a.encoder.EncodeMP3(ctx, buf)
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to encode track: %w", err)
	}

	return &Track{Audio: buf, MP3: mp3}, warnings, nil
}

// assembleAudio composes the retained entries and concatenates their
// blocks with no extra gap.
func (a *Assembler) assembleAudio(ctx context.Context, entries []wordlist.Entry) (*pcm.Buffer, []compose.Warning, error) {
	if a.opts.MaxWords > 0 && len(entries) > a.opts.MaxWords {
		entries = entries[:a.opts.MaxWords]
	}

	var blocks []*pcm.Buffer
	var warnings []compose.Warning

	for i, entry := range entries {
		if a.opts.Progress != nil {
			a.opts.Progress(i+1, len(entries), entry.Word)
		}

		block, blockWarnings := a.composer.Compose(ctx, entry)
		warnings = append(warnings, blockWarnings...)

		if block.Empty() {
			continue
		}
		blocks = append(blocks, block)
	}

	if len(blocks) == 0 {
		return nil, warnings, ErrNoAudio
	}
	return pcm.Concat(blocks...), warnings, nil
}
