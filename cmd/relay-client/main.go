// main package for the relay-client command-line tool
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Flag names.
const (
	flagURL    = "url"
	flagKey    = "key"
	flagUUID   = "uuid"
	flagText   = "text"
	flagVoice  = "voice"
	flagHealth = "health"
)

// Flag descriptions.
const (
	flagURLDesc    = "Base URL of the audio-relay service"
	flagKeyDesc    = "Access key (defaults to the API_KEY_APP environment variable)"
	flagUUIDDesc   = "Identifier for the generated audio file"
	flagTextDesc   = "Text to convert to speech"
	flagVoiceDesc  = "Voice selector: male or female"
	flagHealthDesc = "Check service health and exit"
)

// Defaults.
const (
	defaultServiceURL = "http://localhost:8003"
	defaultVoice      = "female"
	requestTimeout    = 5 * time.Minute
	envAccessKey      = "API_KEY_APP"
)

// Static errors.
var (
	errTextRequired = errors.New("--text is required")
	errUUIDRequired = errors.New("--uuid is required")
	errKeyRequired  = errors.New("access key is required (--key or API_KEY_APP)")
)

// appFlags holds the parsed command-line flag values.
type appFlags struct {
	url    string
	key    string
	uuid   string
	text   string
	voice  string
	health bool
}

// generatePayload is the JSON body of the generation request.
type generatePayload struct {
	UUID      string `json:"uuid"`
	Text      string `json:"text"`
	VoiceType string `json:"voice_type"`
}

func main() {
	err := run()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	flags := parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if flags.health {
		return checkHealth(ctx, flags.url)
	}

	err := validateFlags(&flags)
	if err != nil {
		return err
	}

	hostedURL, err := generateAudio(ctx, flags)
	if err != nil {
		return err
	}

	fmt.Println(hostedURL)

	return nil
}

// parseFlags defines and parses command-line flags, returning them in a struct.
func parseFlags() appFlags {
	var flags appFlags
	flag.StringVar(&flags.url, flagURL, defaultServiceURL, flagURLDesc)
	flag.StringVar(&flags.key, flagKey, "", flagKeyDesc)
	flag.StringVar(&flags.uuid, flagUUID, "", flagUUIDDesc)
	flag.StringVar(&flags.text, flagText, "", flagTextDesc)
	flag.StringVar(&flags.voice, flagVoice, defaultVoice, flagVoiceDesc)
	flag.BoolVar(&flags.health, flagHealth, false, flagHealthDesc)
	flag.Parse()

	return flags
}

func validateFlags(flags *appFlags) error {
	if flags.key == "" {
		flags.key = os.Getenv(envAccessKey)
	}

	if flags.key == "" {
		return errKeyRequired
	}

	if flags.uuid == "" {
		return errUUIDRequired
	}

	if flags.text == "" {
		return errTextRequired
	}

	return nil
}

// generateAudio posts the generation request and returns the hosted URL.
func generateAudio(ctx context.Context, flags appFlags) (string, error) {
	payload := generatePayload{
		UUID:      flags.uuid,
		Text:      flags.text,
		VoiceType: flags.voice,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	requestURL := generateRequestURL(flags.url, flags.key)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		requestURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach service: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"service returned %s: %s",
			resp.Status,
			strings.TrimSpace(string(responseBody)),
		)
	}

	return strings.TrimSpace(string(responseBody)), nil
}

// generateRequestURL builds the generation endpoint URL. The access key goes
// through query encoding so keys with reserved characters survive intact.
func generateRequestURL(baseURL, key string) string {
	query := url.Values{}
	query.Set("key", key)

	return strings.TrimSuffix(baseURL, "/") + "/gerar-audio?" + query.Encode()
}

// checkHealth queries the health endpoint and reports the result.
func checkHealth(ctx context.Context, baseURL string) error {
	requestURL := strings.TrimSuffix(baseURL, "/") + "/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service is not healthy: %s", resp.Status)
	}

	fmt.Println("service is healthy")

	return nil
}
