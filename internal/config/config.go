package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultEngine         = "auto"
	DefaultNarratorVoice  = "narrator"
	DefaultOutputDir      = "output"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxRetries     = 1
)

func SetDefaults() {
	viper.SetDefault("tts.engine", DefaultEngine)
	viper.SetDefault("tts.narrator_voice", DefaultNarratorVoice)
	viper.SetDefault("tts.speed", 1.0)
	viper.SetDefault("tts.volume", 1.0)

	viper.SetDefault("output.dir", DefaultOutputDir)
	viper.SetDefault("output.combine", true)
	viper.SetDefault("output.crossfade_seconds", 0.0)
	viper.SetDefault("output.announce_chapters", true)
	viper.SetDefault("output.transcripts", true)

	viper.SetDefault("parse.grouping", true)
	viper.SetDefault("parse.registry_path", "")

	viper.SetDefault("ai.base_url", "")
	viper.SetDefault("ai.model", DefaultOpenAIModel)
	viper.SetDefault("ai.timeout", DefaultRequestTimeout)
	viper.SetDefault("ai.max_retries", DefaultMaxRetries)
}

// Settings is the typed view of the viper state the pipeline consumes.
type Settings struct {
	Engine        string
	NarratorVoice string
	Speed         float64
	Volume        float64

	OutputDir        string
	CombineFiles     bool
	Crossfade        time.Duration
	AnnounceChapters bool
	WriteTranscripts bool

	UseGrouping  bool
	RegistryPath string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	AITimeout     time.Duration
	AIMaxRetries  int
}

// Load materializes Settings from viper (defaults, config file, env and
// bound flags, in ascending precedence).
func Load() Settings {
	return Settings{
		Engine:        viper.GetString("tts.engine"),
		NarratorVoice: viper.GetString("tts.narrator_voice"),
		Speed:         viper.GetFloat64("tts.speed"),
		Volume:        viper.GetFloat64("tts.volume"),

		OutputDir:        viper.GetString("output.dir"),
		CombineFiles:     viper.GetBool("output.combine"),
		Crossfade:        time.Duration(viper.GetFloat64("output.crossfade_seconds") * float64(time.Second)),
		AnnounceChapters: viper.GetBool("output.announce_chapters"),
		WriteTranscripts: viper.GetBool("output.transcripts"),

		UseGrouping:  viper.GetBool("parse.grouping"),
		RegistryPath: viper.GetString("parse.registry_path"),

		OpenAIKey:     viper.GetString("ai.api_key"),
		OpenAIBaseURL: viper.GetString("ai.base_url"),
		OpenAIModel:   viper.GetString("ai.model"),
		AITimeout:     viper.GetDuration("ai.timeout"),
		AIMaxRetries:  viper.GetInt("ai.max_retries"),
	}
}
