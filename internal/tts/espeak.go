// Local eSpeak/eSpeak-NG synthesis.
package tts

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// ESpeakEngine shells out to espeak with -w to write WAV files. Offline
// and free; quality is what it is.
type ESpeakEngine struct {
	path   string
	speed  float64
	volume float64
}

func newESpeakEngine(config Config) (*ESpeakEngine, error) {
	path, err := findESpeakExecutable()
	if err != nil {
		return nil, fmt.Errorf("eSpeak not found: %w", err)
	}

	// Verify the installation before the first chapter fails mid-run.
	if err := exec.Command(path, "--version").Run(); err != nil {
		return nil, fmt.Errorf("eSpeak test failed: %w", err)
	}

	return &ESpeakEngine{
		path:   path,
		speed:  config.Speed,
		volume: config.Volume,
	}, nil
}

func (e *ESpeakEngine) Synthesize(ctx context.Context, text, voiceID, outputPath string) error {
	args := []string{}

	if voiceID != "" && voiceID != "default" {
		args = append(args, "-v", voiceID)
	}

	// Words per minute; espeak's default is 175.
	args = append(args, "-s", strconv.Itoa(int(175*e.speed)))
	// Amplitude 0-200, default 100.
	args = append(args, "-a", strconv.Itoa(int(100*e.volume)))

	args = append(args, "-w", outputPath, text)

	cmd := exec.CommandContext(ctx, e.path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak failed: %w: %s", err, out)
	}
	return nil
}

func (e *ESpeakEngine) AvailableVoices(ctx context.Context) (map[string]string, error) {
	// espeak voice variants; the +fN/+mN suffixes select different timbres
	// of the same base voice, which is enough for a small cast.
	return map[string]string{
		"narrator": "en",
		"male1":    "en+m1",
		"male2":    "en+m3",
		"male3":    "en+m5",
		"female1":  "en+f1",
		"female2":  "en+f3",
		"female3":  "en+f5",
	}, nil
}

func (e *ESpeakEngine) Close() error {
	return nil
}
