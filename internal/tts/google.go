package tts

import (
	"context"
	"fmt"
	"os"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// googleMaxChunkRunes stays a little under the API's 5000-char input cap.
const googleMaxChunkRunes = 4800

// GoogleEngine synthesizes via Google Cloud Text-to-Speech, writing
// LINEAR16 WAV so segment files can be combined downstream.
type GoogleEngine struct {
	client *texttospeech.Client
	speed  float64
	volume float64
}

func newGoogleEngine(config Config) (*GoogleEngine, error) {
	client, err := texttospeech.NewClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	return &GoogleEngine{
		client: client,
		speed:  config.Speed,
		volume: config.Volume,
	}, nil
}

func (g *GoogleEngine) Synthesize(ctx context.Context, text, voiceID, outputPath string) error {
	if len([]rune(text)) > googleMaxChunkRunes {
		text = string([]rune(text)[:googleMaxChunkRunes])
	}

	audioCfg := &texttospeechpb.AudioConfig{
		AudioEncoding: texttospeechpb.AudioEncoding_LINEAR16,
	}

	// Chirp voices reject speakingRate/volume adjustments.
	if !strings.Contains(strings.ToLower(voiceID), "chirp") {
		audioCfg.SpeakingRate = g.speed
		audioCfg.VolumeGainDb = g.volume
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCodeFor(voiceID),
			Name:         voiceID,
		},
		AudioConfig: audioCfg,
	}

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to synthesize: %w", err)
	}

	if err := os.WriteFile(outputPath, resp.AudioContent, 0644); err != nil {
		return fmt.Errorf("failed to write audio to %s: %w", outputPath, err)
	}

	return nil
}

func (g *GoogleEngine) AvailableVoices(ctx context.Context) (map[string]string, error) {
	resp, err := g.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: "en-US"})
	if err != nil {
		return nil, err
	}

	voices := make(map[string]string, len(resp.Voices))
	for _, v := range resp.Voices {
		voices[v.Name] = v.Name
	}
	return voices, nil
}

func (g *GoogleEngine) Close() error {
	return g.client.Close()
}

// languageCodeFor derives the language code from a Google voice name,
// e.g. "en-GB-Chirp3-HD-Umbriel" -> "en-GB".
func languageCodeFor(voiceID string) string {
	parts := strings.SplitN(voiceID, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}
