package tts

import (
	"fmt"
	"os"
	"os/exec"
)

type EngineType string

const (
	EngineTypeMock   EngineType = "mock"
	EngineTypeESpeak EngineType = "espeak"
	EngineTypeGoogle EngineType = "google"
	EngineTypeAuto   EngineType = "auto" // Automatically choose best available
)

func (e EngineType) String() string {
	return string(e)
}

// NewEngine creates a TTS engine based on the provided config.
func NewEngine(config Config) (Engine, error) {
	if config.Type == EngineTypeAuto.String() {
		config.Type = bestAvailableEngine().String()
	}

	switch config.Type {
	case EngineTypeMock.String():
		return NewMockEngine(config), nil

	case EngineTypeGoogle.String():
		return newGoogleEngine(config)

	case EngineTypeESpeak.String():
		return newESpeakEngine(config)

	default:
		return nil, fmt.Errorf("unsupported TTS engine type: %s", config.Type)
	}
}

// bestAvailableEngine prefers cloud synthesis when credentials exist,
// falls back to a local espeak install, and lands on the mock engine so a
// bare machine can still exercise the pipeline.
func bestAvailableEngine() EngineType {
	if hasGoogleCredentials() {
		return EngineTypeGoogle
	}
	if _, err := findESpeakExecutable(); err == nil {
		return EngineTypeESpeak
	}
	return EngineTypeMock
}

// AvailableEngines returns engines usable in the current environment.
func AvailableEngines() []EngineType {
	engines := []EngineType{EngineTypeMock}

	if _, err := findESpeakExecutable(); err == nil {
		engines = append(engines, EngineTypeESpeak)
	}
	if hasGoogleCredentials() {
		engines = append(engines, EngineTypeGoogle)
	}

	return engines
}

func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}

func findESpeakExecutable() (string, error) {
	candidates := []string{"espeak-ng", "espeak"}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("eSpeak executable not found in PATH")
}
