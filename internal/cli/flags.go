package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	WordFile      string
	OutputDir     string
	Repeat        int
	MaxWords      int
	Slow          bool
	SpellPause    time.Duration
	WordPause     time.Duration
	AnswerCSV     bool
	Archive       bool
	ListProviders bool
	ListModels    bool

	// Audio provider flags
	AudioProvider    string
	FallbackProvider string
	CacheDir         string
	NoCache          bool

	// Translation flags
	Translator    string
	SourceLang    string
	TargetLang    string
	FallbackLang  string
	SkipTranslate bool
	TranslationDB string

	// OpenAI flags
	OpenAIModel string
	OpenAIVoice string
	OpenAISpeed float64
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		OutputDir:     ".",
		Repeat:        2,
		SpellPause:    20 * time.Millisecond,
		WordPause:     300 * time.Millisecond,
		AudioProvider: "google",
		Translator:    "google",
		SourceLang:    "en",
		TargetLang:    "zh-CN",
		FallbackLang:  "zh",
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAIVoice:   "alloy",
		OpenAISpeed:   1.0,
	}
}
