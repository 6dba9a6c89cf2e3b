package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zczcm85/readword/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "readword [file]",
		Short: "Dictation Audio Generator",
		Long: `readword turns a vocabulary word list into a narrated dictation track.

Each word is read aloud, spelled out letter by letter, read once more and
followed by its translation, with configurable pauses between the parts.
The result is a single timestamped MP3 file.

Examples:
  readword words.txt                     # Generate dictation_<timestamp>.mp3
  readword --repeat 3 --slow words.txt   # Three slow reads per word
  cat words.txt | readword -             # Read the word list from stdin`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Default provider cache lives under the user cache directory
	cacheHome, _ := os.UserCacheDir()
	defaultCacheDir := filepath.Join(cacheHome, "readword")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.readword.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Output directory")
	cmd.Flags().IntVar(&flags.Repeat, "repeat", flags.Repeat, "Times each word is read before spelling (1 to 5)")
	cmd.Flags().IntVar(&flags.MaxWords, "max-words", 0, "Limit the number of words rendered (0 = no limit)")
	cmd.Flags().BoolVar(&flags.Slow, "slow", false, "Read whole words at a slow rate")
	cmd.Flags().DurationVar(&flags.SpellPause, "spell-pause", flags.SpellPause, "Pause between spelled letters (up to 500ms)")
	cmd.Flags().DurationVar(&flags.WordPause, "word-pause", flags.WordPause, "Pause between the parts of a word block (up to 1s)")
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "Speech provider: google, openai or espeak")
	cmd.Flags().StringVar(&flags.FallbackProvider, "fallback-provider", "", "Secondary speech provider used when the primary fails")
	cmd.Flags().StringVar(&flags.CacheDir, "cache-dir", defaultCacheDir, "Directory for cached provider audio")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Disable the provider audio cache")
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "Translation backend: google, openai or gemini")
	cmd.Flags().StringVar(&flags.SourceLang, "source-lang", flags.SourceLang, "Language the words are in")
	cmd.Flags().StringVar(&flags.TargetLang, "target-lang", flags.TargetLang, "Language translations are spoken in")
	cmd.Flags().StringVar(&flags.FallbackLang, "fallback-lang", flags.FallbackLang, "Locale tried when the target locale yields nothing")
	cmd.Flags().BoolVar(&flags.SkipTranslate, "skip-translate", false, "Leave missing translations empty instead of looking them up")
	cmd.Flags().StringVar(&flags.TranslationDB, "translation-db", "", "SQLite file for remembered translations (empty = disabled)")
	cmd.Flags().BoolVar(&flags.AnswerCSV, "answer-csv", false, "Write an answer sheet CSV next to the track")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move previous dictation files into archive/ first")
	cmd.Flags().BoolVar(&flags.ListProviders, "list-providers", false, "List available speech providers and translation backends")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("audio-provider"))
	viper.BindPFlag("audio.fallback_provider", cmd.Flags().Lookup("fallback-provider"))
	viper.BindPFlag("audio.cache_dir", cmd.Flags().Lookup("cache-dir"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("translate.backend", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translate.source", cmd.Flags().Lookup("source-lang"))
	viper.BindPFlag("translate.target", cmd.Flags().Lookup("target-lang"))
	viper.BindPFlag("translate.fallback", cmd.Flags().Lookup("fallback-lang"))
	viper.BindPFlag("translate.db", cmd.Flags().Lookup("translation-db"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".readword" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".readword")
	}

	// Environment variables
	viper.SetEnvPrefix("READWORD")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	// First check environment variable
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translate.gemini_key")
}
