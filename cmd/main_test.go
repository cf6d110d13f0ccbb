package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fablecast/internal/config"
)

func generateFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flags.Bool("no-grouping", false, "")
	flags.Bool("no-combine", false, "")
	flags.Bool("no-announce", false, "")
	flags.Bool("no-transcripts", false, "")
	return flags
}

func allOnSettings() config.Settings {
	return config.Settings{
		UseGrouping:      true,
		CombineFiles:     true,
		AnnounceChapters: true,
		WriteTranscripts: true,
	}
}

func TestApplyGenerateFlagsOverridesSetFlags(t *testing.T) {
	flags := generateFlagSet()
	require.NoError(t, flags.Parse([]string{"--no-combine", "--no-transcripts"}))

	settings := allOnSettings()
	applyGenerateFlags(&settings, flags)

	assert.True(t, settings.UseGrouping)
	assert.False(t, settings.CombineFiles)
	assert.True(t, settings.AnnounceChapters)
	assert.False(t, settings.WriteTranscripts)
}

func TestApplyGenerateFlagsEachFlag(t *testing.T) {
	tests := []struct {
		flag  string
		check func(config.Settings) bool
	}{
		{"--no-grouping", func(s config.Settings) bool { return s.UseGrouping }},
		{"--no-combine", func(s config.Settings) bool { return s.CombineFiles }},
		{"--no-announce", func(s config.Settings) bool { return s.AnnounceChapters }},
		{"--no-transcripts", func(s config.Settings) bool { return s.WriteTranscripts }},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flags := generateFlagSet()
			require.NoError(t, flags.Parse([]string{tt.flag}))

			settings := allOnSettings()
			applyGenerateFlags(&settings, flags)

			assert.False(t, tt.check(settings))
		})
	}
}

func TestApplyGenerateFlagsUnsetLeaveConfigAlone(t *testing.T) {
	flags := generateFlagSet()
	require.NoError(t, flags.Parse(nil))

	settings := config.Settings{CombineFiles: false, UseGrouping: true}
	applyGenerateFlags(&settings, flags)

	assert.False(t, settings.CombineFiles, "config file value survives when no flag is set")
	assert.True(t, settings.UseGrouping)
}

func voicesFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("voices", pflag.ContinueOnError)
	flags.String("engine", config.DefaultEngine, "")
	return flags
}

func TestApplyVoicesFlagsEngineOverride(t *testing.T) {
	flags := voicesFlagSet()
	require.NoError(t, flags.Parse([]string{"--engine", "mock"}))

	settings := config.Settings{Engine: "espeak"}
	applyVoicesFlags(&settings, flags)

	assert.Equal(t, "mock", settings.Engine)
}

func TestApplyVoicesFlagsUnsetKeepsConfiguredEngine(t *testing.T) {
	flags := voicesFlagSet()
	require.NoError(t, flags.Parse(nil))

	settings := config.Settings{Engine: "espeak"}
	applyVoicesFlags(&settings, flags)

	assert.Equal(t, "espeak", settings.Engine)
}
