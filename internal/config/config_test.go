package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	s := Load()

	assert.Equal(t, "auto", s.Engine)
	assert.Equal(t, "narrator", s.NarratorVoice)
	assert.Equal(t, 1.0, s.Speed)
	assert.Equal(t, 1.0, s.Volume)
	assert.Equal(t, "output", s.OutputDir)
	assert.True(t, s.CombineFiles)
	assert.Zero(t, s.Crossfade)
	assert.True(t, s.AnnounceChapters)
	assert.True(t, s.WriteTranscripts)
	assert.True(t, s.UseGrouping)
	assert.Equal(t, "gpt-4o-mini", s.OpenAIModel)
	assert.Equal(t, 60*time.Second, s.AITimeout)
	assert.Equal(t, 1, s.AIMaxRetries)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	SetDefaults()
	viper.Set("tts.engine", "espeak")
	viper.Set("output.crossfade_seconds", 0.5)
	viper.Set("parse.grouping", false)

	s := Load()

	assert.Equal(t, "espeak", s.Engine)
	assert.Equal(t, 500*time.Millisecond, s.Crossfade)
	assert.False(t, s.UseGrouping)
}
