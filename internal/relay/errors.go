package relay

import (
	"errors"
	"fmt"
)

// Static errors. The HTTP boundary matches these to transport status codes;
// anything unrecognized is treated as an internal failure and its detail is
// logged rather than returned to the caller.
var (
	// ErrUnauthorized indicates that the supplied access key does not match
	// the configured one.
	ErrUnauthorized = errors.New("invalid access key")
	// ErrUnknownVoice indicates that the voice selector is not registered.
	ErrUnknownVoice = errors.New("unknown voice selector")
	// ErrAudioNotGenerated indicates that synthesis reported success but no
	// audio file exists at the expected path.
	ErrAudioNotGenerated = errors.New("audio file was not generated")
)

// UploadError carries a hosting-provider failure. Unlike other internal
// failures, the provider's error text is intentionally surfaced to the caller.
type UploadError struct {
	PublicID string
	Err      error
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of '%s' failed: %v", e.PublicID, e.Err)
}

// Unwrap exposes the underlying provider error.
func (e *UploadError) Unwrap() error {
	return e.Err
}
