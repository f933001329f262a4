package synth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/book-expert/logger"

	"github.com/book-expert/audio-relay/internal/synth/text"
)

// File and directory permissions.
const (
	filePermissions = 0o600
	dirPermissions  = 0o750
)

// Log formats.
const (
	logFmtGeneratedAudio = "Generated audio: %s (%d bytes)"
)

// Engine implements core.SpeechSynthesizer on top of the synthesis service
// client. It normalizes input text, fetches the audio from the provider, and
// writes it to the requested local path.
type Engine struct {
	client     *Client
	normalizer *text.Normalizer
	timeout    time.Duration
	log        *logger.Logger
}

// NewEngine creates a synthesis engine with the provided client. The timeout
// bounds every synthesis call independently of the caller's context.
func NewEngine(client *Client, timeout time.Duration, log *logger.Logger) *Engine {
	return &Engine{
		client:     client,
		normalizer: text.NewNormalizer(),
		timeout:    timeout,
		log:        log,
	}
}

// Synthesize converts text to speech using the provider voice identifier and
// writes the resulting audio file to outputPath. The parent directory is
// created if it does not exist.
func (e *Engine) Synthesize(ctx context.Context, input, voice, outputPath string) error {
	if input == "" {
		return ErrTextEmpty
	}

	if voice == "" {
		return ErrVoiceEmpty
	}

	dirErr := os.MkdirAll(filepath.Dir(outputPath), dirPermissions)
	if dirErr != nil {
		return fmt.Errorf("failed to create output directory: %w", dirErr)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req := Request{
		Text:  e.normalizer.Normalize(input),
		Voice: voice,
	}

	audioData, speechErr := e.client.GenerateSpeech(callCtx, req)
	if speechErr != nil {
		return fmt.Errorf("failed to generate speech: %w", speechErr)
	}

	writeErr := os.WriteFile(outputPath, audioData, filePermissions)
	if writeErr != nil {
		return fmt.Errorf("failed to write audio file: %w", writeErr)
	}

	e.log.Info(logFmtGeneratedAudio, outputPath, len(audioData))

	return nil
}
