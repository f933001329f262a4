// Package core defines the core business logic and interfaces for the audio relay.
package core

import (
	"context"
	"time"
)

// SpeechSynthesizer defines the interface for a text-to-speech engine that
// writes synthesized audio to a local file.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice, outputPath string) error
}

// UploadResult is the durable artifact returned by the hosting provider.
type UploadResult struct {
	SecureURL string
	PublicID  string
}

// HostSnapshot reflects the hosting provider configuration currently loaded
// by the process. It is read by the diagnostics endpoints only.
type HostSnapshot struct {
	CloudName       string
	APIKey          string
	APISecretLength int
	Secure          bool
}

// MediaHost defines the interface for a media-hosting provider that stores an
// uploaded local file under a public identifier and returns a durable URL.
type MediaHost interface {
	Upload(ctx context.Context, localPath, publicID string) (UploadResult, error)
	Snapshot() HostSnapshot
}

// AudioPublishedEvent announces a successfully hosted audio file.
type AudioPublishedEvent struct {
	RequestID   string    `json:"request_id"`
	PublicID    string    `json:"public_id"`
	SecureURL   string    `json:"secure_url"`
	Voice       string    `json:"voice"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Notifier defines the interface for announcing completed generations to
// downstream consumers. Implementations must not block the request path
// beyond the caller-provided context.
type Notifier interface {
	AudioPublished(ctx context.Context, event AudioPublishedEvent) error
}
