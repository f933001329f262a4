// Package mediahost provides a Cloudinary-backed implementation of the
// MediaHost interface.
package mediahost

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/book-expert/audio-relay/internal/core"
)

// Sample asset used by the diagnostics URL-construction smoke test.
const sampleAssetName = "sample.jpg"

// ErrEmptySecureURL indicates that the provider reported success but returned
// no hosted URL.
var ErrEmptySecureURL = errors.New("upload succeeded but no secure url was returned")

// Options configures the Cloudinary host.
type Options struct {
	CloudName string
	APIKey    string
	APISecret string

	// ResourceType is the provider resource-type hint for uploads. Audio
	// files are uploaded as "video" per the provider's convention.
	ResourceType string

	// Timeout bounds every upload call independently of the caller's context.
	Timeout time.Duration

	// Secure requests HTTPS delivery URLs.
	Secure bool
}

// CloudinaryHost implements core.MediaHost using the Cloudinary SDK.
type CloudinaryHost struct {
	client       *cloudinary.Cloudinary
	resourceType string
	timeout      time.Duration
	snapshot     core.HostSnapshot
}

// New creates a Cloudinary host from explicit credentials.
func New(opts Options) (*CloudinaryHost, error) {
	client, err := cloudinary.NewFromParams(opts.CloudName, opts.APIKey, opts.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	client.Config.URL.Secure = opts.Secure

	return &CloudinaryHost{
		client:       client,
		resourceType: opts.ResourceType,
		timeout:      opts.Timeout,
		snapshot: core.HostSnapshot{
			CloudName:       opts.CloudName,
			APIKey:          opts.APIKey,
			APISecretLength: len(opts.APISecret),
			Secure:          opts.Secure,
		},
	}, nil
}

// Upload stores the local file under the given public identifier and returns
// the hosted artifact. Provider failures are returned with the provider's
// error text preserved so the boundary layer can surface it.
func (h *CloudinaryHost) Upload(
	ctx context.Context,
	localPath, publicID string,
) (core.UploadResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp, err := h.client.Upload.Upload(callCtx, localPath, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: h.resourceType,
	})
	if err != nil {
		return core.UploadResult{}, fmt.Errorf(
			"failed to upload '%s' as '%s': %w", localPath, publicID, err,
		)
	}

	// The SDK reports some API-level failures in the response body rather
	// than through the returned error.
	if resp.Error.Message != "" {
		return core.UploadResult{}, fmt.Errorf(
			"upload of '%s' rejected by provider: %s", publicID, resp.Error.Message,
		)
	}

	if resp.SecureURL == "" {
		return core.UploadResult{}, ErrEmptySecureURL
	}

	return core.UploadResult{
		SecureURL: resp.SecureURL,
		PublicID:  resp.PublicID,
	}, nil
}

// Snapshot returns the provider configuration loaded at startup.
func (h *CloudinaryHost) Snapshot() core.HostSnapshot {
	return h.snapshot
}

// SampleURL exercises the SDK's URL-construction path against a sample asset.
// It performs no network calls and exists purely as a diagnostics smoke test.
func (h *CloudinaryHost) SampleURL() (string, error) {
	image, err := h.client.Image(sampleAssetName)
	if err != nil {
		return "", fmt.Errorf("failed to build sample asset: %w", err)
	}

	url, err := image.String()
	if err != nil {
		return "", fmt.Errorf("failed to build sample url: %w", err)
	}

	return url, nil
}
