package tts

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"strings"
)

// MockEngine writes short silent WAV files instead of real speech. Used in
// tests and for dry runs of the pipeline on machines without any TTS
// backend.
type MockEngine struct {
	speed float64
}

func NewMockEngine(c Config) *MockEngine {
	speed := c.Speed
	if speed <= 0 {
		speed = 1.0
	}
	return &MockEngine{speed: speed}
}

func (m *MockEngine) Synthesize(ctx context.Context, text, voiceID, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Roughly 150 words per minute, min 50ms so files are never empty.
	words := len(strings.Fields(text))
	millis := int(float64(words) / (150.0 * m.speed) * 60_000)
	if millis < 50 {
		millis = 50
	}

	return os.WriteFile(outputPath, silentWAV(millis), 0644)
}

func (m *MockEngine) AvailableVoices(ctx context.Context) (map[string]string, error) {
	return map[string]string{
		"narrator": "mock-narrator",
		"voice1":   "mock-voice-1",
		"voice2":   "mock-voice-2",
		"voice3":   "mock-voice-3",
	}, nil
}

func (m *MockEngine) Close() error {
	return nil
}

// silentWAV builds a valid 16-bit mono PCM WAV of the given duration.
func silentWAV(millis int) []byte {
	const sampleRate = 22050
	samples := sampleRate * millis / 1000
	dataSize := samples * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}
