package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/zczcm85/readword/internal/archive"
	"github.com/zczcm85/readword/internal/audio"
	"github.com/zczcm85/readword/internal/cli"
	"github.com/zczcm85/readword/internal/sheet"
	"github.com/zczcm85/readword/internal/track"
	"github.com/zczcm85/readword/internal/translate"
	"github.com/zczcm85/readword/internal/wordlist"
)

// Processor handles the main dictation generation logic
type Processor struct {
	flags *cli.Flags
}

// NewProcessor creates a new dictation processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{flags: flags}
}

// Run reads the word list, resolves missing translations and assembles
// the dictation track in the output directory.
func (p *Processor) Run(ctx context.Context) error {
	entries, err := wordlist.ReadFile(p.flags.WordFile)
	if err != nil {
		return err
	}

	// Create output directory (including parent directories)
	if err := os.MkdirAll(p.flags.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Rotate previous runs out of the way first
	if p.flags.Archive {
		if err := archive.ArchiveTracks(p.flags.OutputDir); err != nil {
			return err
		}
	}

	// Resolve translations for entries that do not carry one
	if !p.flags.SkipTranslate {
		entries, err = p.resolveTranslations(ctx, entries)
		if err != nil {
			return err
		}
	}

	// Create the synthesizer
	synth, err := p.newSynthesizer()
	if err != nil {
		return err
	}
	if err := synth.IsAvailable(); err != nil {
		return fmt.Errorf("audio provider %s is not available: %w", synth.Name(), err)
	}

	rendered := len(entries)
	if p.flags.MaxWords > 0 && p.flags.MaxWords < rendered {
		rendered = p.flags.MaxWords
	}
	fmt.Printf("Generating dictation audio for %d word(s) with %s\n", rendered, synth.Name())

	assembler := track.NewAssembler(synth, p.renderOptions())
	result, warnings, err := assembler.Assemble(ctx, entries)
	if errors.Is(err, track.ErrNoAudio) {
		return fmt.Errorf("nothing to read: %w", err)
	}
	if err != nil {
		return err
	}

	for _, w := range warnings {
		fmt.Printf("  Warning: synthesis failed for '%s': %v\n", w.Text, w.Err)
	}

	// Write the track with a timestamped name
	timestamp := time.Now().Format("060102-150405")
	trackFile := filepath.Join(p.flags.OutputDir, fmt.Sprintf("dictation_%s.mp3", timestamp))
	if err := os.WriteFile(trackFile, result.MP3, 0644); err != nil {
		return fmt.Errorf("failed to write track: %w", err)
	}

	var csvFile string
	if p.flags.AnswerCSV {
		csvFile = filepath.Join(p.flags.OutputDir, fmt.Sprintf("dictation_%s.csv", timestamp))
		if err := p.writeAnswerSheet(entries[:rendered], csvFile); err != nil {
			return err
		}
	}

	// Print summary
	fmt.Printf("\n=== Dictation Summary ===\n")
	fmt.Printf("Words: %d\n", rendered)
	fmt.Printf("Duration: %s\n", result.Audio.Duration().Round(time.Second))
	if len(warnings) > 0 {
		fmt.Printf("Warnings: %d\n", len(warnings))
	}
	fmt.Printf("Track: %s\n", trackFile)
	if csvFile != "" {
		fmt.Printf("Answer sheet: %s\n", csvFile)
	}
	fmt.Printf("=========================\n")

	return nil
}

// ListProviders prints the available speech providers and translation backends
func (p *Processor) ListProviders() {
	fmt.Println("Available speech providers:")
	for _, name := range audio.ListProviders() {
		config := audio.DefaultSynthesizerConfig()
		config.Provider = name
		config.OpenAIKey = cli.GetOpenAIKey()

		synth, err := audio.NewSynthesizer(config)
		if err == nil {
			err = synth.IsAvailable()
		}
		if err != nil {
			fmt.Printf("  %s (unavailable: %v)\n", name, err)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}

	fmt.Println("\nAvailable translation backends:")
	for _, name := range translate.ListBackends() {
		config := p.translateConfig()
		config.Backend = name
		if _, err := translate.NewBackend(config); err != nil {
			fmt.Printf("  %s (unavailable: %v)\n", name, err)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}

// resolveTranslations fills empty translations through the configured
// backend, printing a warning line for every word that stays empty.
func (p *Processor) resolveTranslations(ctx context.Context, entries []wordlist.Entry) ([]wordlist.Entry, error) {
	config := p.translateConfig()

	backend, err := translate.NewBackend(config)
	if err != nil {
		return nil, err
	}

	resolver := translate.NewResolver(backend, config)

	// The keyless google endpoint backs up paid backends
	if config.Backend != "google" && config.Backend != "" {
		googleConfig := *config
		googleConfig.Backend = "google"
		if fallback, err := translate.NewBackend(&googleConfig); err == nil {
			resolver.SetFallbackBackend(fallback)
		}
	}

	dbPath := p.flags.TranslationDB
	if dbPath == "" && viper.IsSet("translate.db") {
		dbPath = viper.GetString("translate.db")
	}
	if dbPath != "" {
		store, err := translate.OpenStore(dbPath)
		if err != nil {
			fmt.Printf("  Warning: translation store unavailable: %v\n", err)
		} else {
			resolver.SetStore(store)
			defer store.Close()
		}
	}

	resolved, warnings := resolver.Resolve(ctx, entries)
	for _, w := range warnings {
		fmt.Printf("  Warning: no translation for '%s': %v\n", w.Word, w.Err)
	}

	return resolved, nil
}

// newSynthesizer builds the speech provider chain from flags and config
func (p *Processor) newSynthesizer() (audio.Synthesizer, error) {
	config := p.audioConfig(p.flags.AudioProvider)

	// Use config file value if the provider was not overridden by flags
	if p.flags.AudioProvider == "google" && viper.IsSet("audio.provider") {
		config.Provider = viper.GetString("audio.provider")
	}

	primary, err := audio.NewSynthesizer(config)
	if err != nil {
		return nil, err
	}

	fallbackName := p.flags.FallbackProvider
	if fallbackName == "" && viper.IsSet("audio.fallback_provider") {
		fallbackName = viper.GetString("audio.fallback_provider")
	}
	if fallbackName == "" || fallbackName == config.Provider {
		return primary, nil
	}

	fallbackConfig := p.audioConfig(fallbackName)
	fallback, err := audio.NewSynthesizer(fallbackConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback provider: %w", err)
	}

	return audio.NewSynthesizerWithFallback(primary, fallback), nil
}

// audioConfig maps flags onto a provider configuration
func (p *Processor) audioConfig(provider string) *audio.Config {
	config := audio.DefaultSynthesizerConfig()
	config.Provider = provider
	config.EnableCache = !p.flags.NoCache
	config.CacheDir = p.flags.CacheDir
	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIModel = p.flags.OpenAIModel
	config.OpenAIVoice = p.flags.OpenAIVoice
	config.OpenAISpeed = p.flags.OpenAISpeed

	// Use config file values if not overridden by flags
	if p.flags.CacheDir == "" && viper.IsSet("audio.cache_dir") {
		config.CacheDir = viper.GetString("audio.cache_dir")
	}
	if p.flags.OpenAIModel == "gpt-4o-mini-tts" && viper.IsSet("audio.openai_model") {
		config.OpenAIModel = viper.GetString("audio.openai_model")
	}
	if p.flags.OpenAIVoice == "alloy" && viper.IsSet("audio.openai_voice") {
		config.OpenAIVoice = viper.GetString("audio.openai_voice")
	}
	if p.flags.OpenAISpeed == 1.0 && viper.IsSet("audio.openai_speed") {
		config.OpenAISpeed = viper.GetFloat64("audio.openai_speed")
	}

	return config
}

// translateConfig maps flags onto a translation configuration
func (p *Processor) translateConfig() *translate.Config {
	config := translate.DefaultConfig()
	config.Backend = p.flags.Translator
	config.Source = p.flags.SourceLang
	config.Target = p.flags.TargetLang
	config.Fallback = p.flags.FallbackLang
	config.OpenAIKey = cli.GetOpenAIKey()
	config.GeminiKey = cli.GetGeminiKey()

	// Use config file values if not overridden by flags
	if p.flags.Translator == "google" && viper.IsSet("translate.backend") {
		config.Backend = viper.GetString("translate.backend")
	}
	if p.flags.SourceLang == "en" && viper.IsSet("translate.source") {
		config.Source = viper.GetString("translate.source")
	}
	if p.flags.TargetLang == "zh-CN" && viper.IsSet("translate.target") {
		config.Target = viper.GetString("translate.target")
	}
	if p.flags.FallbackLang == "zh" && viper.IsSet("translate.fallback") {
		config.Fallback = viper.GetString("translate.fallback")
	}

	return config
}

// renderOptions maps flags onto the track assembly options
func (p *Processor) renderOptions() track.Options {
	return track.Options{
		RepeatCount: p.flags.Repeat,
		MaxWords:    p.flags.MaxWords,
		SlowSpeed:   p.flags.Slow,
		SpellPause:  p.flags.SpellPause,
		WordPause:   p.flags.WordPause,
		SourceLang:  p.flags.SourceLang,
		TargetLang:  p.flags.TargetLang,
		Progress: func(i, n int, word string) {
			fmt.Printf("\nProcessing %d/%d: %s\n", i, n, word)
		},
	}
}

// writeAnswerSheet exports the rendered entries as a CSV answer sheet
func (p *Processor) writeAnswerSheet(entries []wordlist.Entry, path string) error {
	gen := sheet.NewGenerator(&sheet.GeneratorOptions{
		OutputPath:     path,
		IncludeHeaders: true,
	})
	for _, entry := range entries {
		if entry.Word == "" {
			continue
		}
		gen.AddEntry(entry)
	}

	if err := gen.GenerateCSV(); err != nil {
		return fmt.Errorf("failed to generate answer sheet: %w", err)
	}

	total, translated := gen.Stats()
	fmt.Printf("Answer sheet: %d word(s), %d translated\n", total, translated)
	return nil
}
