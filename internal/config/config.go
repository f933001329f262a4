// Package config provides the configuration structure for the audio-relay service.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/book-expert/configurator"
	"github.com/book-expert/logger"
)

// Environment variable names for process secrets. Secrets are deliberately
// kept out of the TOML file and read once at startup.
const (
	envAccessKey           = "API_KEY_APP"
	envCloudinaryCloudName = "CLOUDINARY_CLOUD_NAME"
	envCloudinaryAPIKey    = "CLOUDINARY_API_KEY"
	envCloudinaryAPISecret = "CLOUDINARY_API_SECRET"
)

// Default provider voice identifiers for the caller-facing voice selectors.
const (
	defaultMaleVoice   = "pt-BR-AntonioNeural"
	defaultFemaleVoice = "pt-BR-FranciscaNeural"
)

// Defaults applied when the TOML file leaves a value unset.
const (
	defaultListenAddr            = ":8003"
	defaultSynthesisTimeoutSecs  = 60
	defaultUploadTimeoutSecs     = 120
	defaultShutdownTimeoutSecs   = 30
	defaultMediaResourceType     = "video"
	defaultAudioPublishedSubject = "audio.published"
)

// Static errors.
var (
	// ErrAccessKeyMissing indicates that the shared access key secret is not set.
	ErrAccessKeyMissing = errors.New("access key secret is not set")
	// ErrCloudNameMissing indicates that the hosting provider cloud name is not set.
	ErrCloudNameMissing = errors.New("hosting provider cloud name is not set")
	// ErrAPIKeyMissing indicates that the hosting provider API key is not set.
	ErrAPIKeyMissing = errors.New("hosting provider api key is not set")
	// ErrAPISecretMissing indicates that the hosting provider API secret is not set.
	ErrAPISecretMissing = errors.New("hosting provider api secret is not set")
	// ErrSynthesisURLMissing indicates that the synthesis service URL is not set.
	ErrSynthesisURLMissing = errors.New("synthesis service url is not set")
)

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	ListenAddr             string `toml:"listen_addr"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
}

// SynthesisConfig holds the configuration for the speech synthesis provider.
type SynthesisConfig struct {
	ServiceURL     string            `toml:"service_url"`
	TimeoutSeconds int               `toml:"timeout_seconds"`
	Voices         map[string]string `toml:"voices"`
}

// MediaConfig holds the configuration for the media hosting provider.
type MediaConfig struct {
	ResourceType   string `toml:"resource_type"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Secure         bool   `toml:"secure"`
}

// NATSConfig holds the configuration for the completion-event notifier.
// An empty URL disables event publication entirely.
type NATSConfig struct {
	URL                   string `toml:"url"`
	AudioPublishedSubject string `toml:"audio_published_subject"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir string `toml:"base_logs_dir"`
	WorkDir     string `toml:"work_dir"`
}

// Secrets holds the process-wide secrets loaded from the environment.
type Secrets struct {
	AccessKey           string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Synthesis SynthesisConfig `toml:"synthesis"`
	Media     MediaConfig     `toml:"media"`
	NATS      NATSConfig      `toml:"nats"`
	Paths     PathsConfig     `toml:"paths"`

	Secrets Secrets `toml:"-"`
}

// Load loads the configuration for the audio-relay service and applies
// defaults for values the TOML file leaves unset. Secrets are read from the
// environment afterwards.
func Load(log *logger.Logger) (*Config, error) {
	var cfg Config

	err := configurator.Load(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	cfg.applyDefaults()
	cfg.loadSecrets()

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = defaultListenAddr
	}

	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = defaultShutdownTimeoutSecs
	}

	if c.Synthesis.TimeoutSeconds <= 0 {
		c.Synthesis.TimeoutSeconds = defaultSynthesisTimeoutSecs
	}

	if len(c.Synthesis.Voices) == 0 {
		c.Synthesis.Voices = map[string]string{
			"male":   defaultMaleVoice,
			"female": defaultFemaleVoice,
		}
	}

	if c.Media.ResourceType == "" {
		c.Media.ResourceType = defaultMediaResourceType
	}

	if c.Media.TimeoutSeconds <= 0 {
		c.Media.TimeoutSeconds = defaultUploadTimeoutSecs
	}

	if c.NATS.AudioPublishedSubject == "" {
		c.NATS.AudioPublishedSubject = defaultAudioPublishedSubject
	}

	if c.Paths.WorkDir == "" {
		c.Paths.WorkDir = os.TempDir()
	}
}

func (c *Config) loadSecrets() {
	c.Secrets = Secrets{
		AccessKey:           os.Getenv(envAccessKey),
		CloudinaryCloudName: os.Getenv(envCloudinaryCloudName),
		CloudinaryAPIKey:    os.Getenv(envCloudinaryAPIKey),
		CloudinaryAPISecret: os.Getenv(envCloudinaryAPISecret),
	}
}

// Validate checks that every value the request pipeline depends on is present.
func (c *Config) Validate() error {
	if c.Synthesis.ServiceURL == "" {
		return ErrSynthesisURLMissing
	}

	if c.Secrets.AccessKey == "" {
		return ErrAccessKeyMissing
	}

	if c.Secrets.CloudinaryCloudName == "" {
		return ErrCloudNameMissing
	}

	if c.Secrets.CloudinaryAPIKey == "" {
		return ErrAPIKeyMissing
	}

	if c.Secrets.CloudinaryAPISecret == "" {
		return ErrAPISecretMissing
	}

	return nil
}
