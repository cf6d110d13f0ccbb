package tts

import "context"

type Config struct {
	Type   string
	Voice  string
	Speed  float64
	Volume float64
}

// Engine synthesizes text into audio files. Implementations write WAV so
// segment files can be combined per chapter.
type Engine interface {
	Synthesize(ctx context.Context, text, voiceID, outputPath string) error
	AvailableVoices(ctx context.Context) (map[string]string, error)
	Close() error
}
