// Package relay implements the audio relay pipeline: authorize, synthesize,
// upload, clean up. It is the single workflow of the service; every request
// runs the same strict sequence and leaves no local state behind.
package relay

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/book-expert/logger"
	"github.com/google/uuid"

	"github.com/book-expert/audio-relay/internal/core"
)

const audioFileExtension = ".mp3"

// GenerateRequest is a single synthesis request. ID is the caller-supplied
// identifier used to name the remote hosted object.
type GenerateRequest struct {
	ID    string
	Text  string
	Voice string
}

// Service drives a request through synthesis, upload, and cleanup.
type Service struct {
	synthesizer core.SpeechSynthesizer
	host        core.MediaHost
	notifier    core.Notifier
	voices      map[string]string
	accessKey   string
	workDir     string
	log         *logger.Logger
}

// NewService creates the relay pipeline. The notifier may be nil, in which
// case completion events are not published. The voices map translates
// caller-facing selectors to provider voice identifiers.
func NewService(
	synthesizer core.SpeechSynthesizer,
	host core.MediaHost,
	notifier core.Notifier,
	voices map[string]string,
	accessKey string,
	workDir string,
	log *logger.Logger,
) *Service {
	return &Service{
		synthesizer: synthesizer,
		host:        host,
		notifier:    notifier,
		voices:      voices,
		accessKey:   accessKey,
		workDir:     workDir,
		log:         log,
	}
}

// GenerateAudio runs the full pipeline and returns the hosted file's secure
// URL. The temporary audio file never outlives the call: it is removed on
// success and on every failure path past its creation.
func (s *Service) GenerateAudio(
	ctx context.Context,
	req GenerateRequest,
	suppliedKey string,
) (string, error) {
	// Step 1: authorization, before any other validation.
	if subtle.ConstantTimeCompare([]byte(suppliedKey), []byte(s.accessKey)) != 1 {
		return "", ErrUnauthorized
	}

	// Step 2: voice validation.
	providerVoice, ok := s.voices[req.Voice]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownVoice, req.Voice)
	}

	// The temp filename carries a per-request random token, so concurrent
	// requests reusing the same identifier never race on one path.
	sanitizedID := SanitizeIdentifier(req.ID)
	token := uuid.NewString()

	tempPath := s.tempFilePath(sanitizedID, token)
	defer s.removeTempFile(tempPath)

	// Step 3: synthesis writes the audio file to the temp path.
	synthErr := s.synthesizer.Synthesize(ctx, req.Text, providerVoice, tempPath)
	if synthErr != nil {
		return "", fmt.Errorf("failed to synthesize audio: %w", synthErr)
	}

	// Step 4: guard against silent synthesis failure.
	_, statErr := os.Stat(tempPath)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return "", ErrAudioNotGenerated
		}

		return "", fmt.Errorf("failed to check audio file: %w", statErr)
	}

	// Step 5: upload under the sanitized caller identifier.
	publicID := sanitizedID
	if publicID == "" {
		publicID = token
	}

	result, uploadErr := s.host.Upload(ctx, tempPath, publicID)
	if uploadErr != nil {
		return "", &UploadError{PublicID: publicID, Err: uploadErr}
	}

	s.log.Info("Uploaded audio: public_id=%s url=%s", result.PublicID, result.SecureURL)

	s.publishEvent(ctx, req, result)

	return result.SecureURL, nil
}

// tempFilePath derives the local temp filename from the sanitized identifier
// and the per-request token.
func (s *Service) tempFilePath(sanitizedID, token string) string {
	name := token + audioFileExtension
	if sanitizedID != "" {
		name = sanitizedID + "-" + name
	}

	return filepath.Join(s.workDir, name)
}

// removeTempFile deletes the temp file if it exists. Step 6 of the pipeline:
// it runs on every path, success or failure.
func (s *Service) removeTempFile(path string) {
	removeErr := os.Remove(path)
	if removeErr != nil && !os.IsNotExist(removeErr) {
		s.log.Warn("Failed to remove temp file '%s': %v", path, removeErr)
	}
}

// publishEvent announces the hosted artifact. A notification failure is
// logged and never changes the request outcome.
func (s *Service) publishEvent(
	ctx context.Context,
	req GenerateRequest,
	result core.UploadResult,
) {
	if s.notifier == nil {
		return
	}

	event := core.AudioPublishedEvent{
		RequestID:   req.ID,
		PublicID:    result.PublicID,
		SecureURL:   result.SecureURL,
		Voice:       req.Voice,
		GeneratedAt: time.Now().UTC(),
	}

	notifyErr := s.notifier.AudioPublished(ctx, event)
	if notifyErr != nil {
		s.log.Warn("Failed to publish audio event for '%s': %v", result.PublicID, notifyErr)
	}
}
