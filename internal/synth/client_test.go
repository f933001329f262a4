// Package synth_test tests the synthesis service client.
package synth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/book-expert/audio-relay/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 10 * time.Second

func TestClient_GenerateSpeech_Success(t *testing.T) {
	t.Parallel()

	const testAudioData = "fake-mp3-data"

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/v1/synthesize", request.URL.Path)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
			assert.Equal(t, "audio/mpeg", request.Header.Get("Accept"))

			var req synth.Request

			err := json.NewDecoder(request.Body).Decode(&req)
			require.NoError(t, err)
			assert.Equal(t, "Olá mundo.", req.Text)
			assert.Equal(t, "pt-BR-AntonioNeural", req.Voice)

			responseWriter.Header().Set("Content-Type", "audio/mpeg")
			responseWriter.WriteHeader(http.StatusOK)
			_, _ = responseWriter.Write([]byte(testAudioData))
		},
	))
	defer server.Close()

	client := synth.NewClient(server.URL, testTimeout)

	audioData, err := client.GenerateSpeech(context.Background(), synth.Request{
		Text:  "Olá mundo.",
		Voice: "pt-BR-AntonioNeural",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte(testAudioData), audioData)
}

func TestClient_GenerateSpeech_InputValidation(t *testing.T) {
	t.Parallel()

	client := synth.NewClient("http://127.0.0.1:1", testTimeout)

	_, err := client.GenerateSpeech(context.Background(), synth.Request{
		Text:  "",
		Voice: "pt-BR-AntonioNeural",
	})
	require.ErrorIs(t, err, synth.ErrTextEmpty)

	_, err = client.GenerateSpeech(context.Background(), synth.Request{
		Text:  "Olá",
		Voice: "",
	})
	require.ErrorIs(t, err, synth.ErrVoiceEmpty)
}

func TestClient_GenerateSpeech_ServiceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, _ *http.Request) {
			responseWriter.Header().Set("Content-Type", "application/json")
			responseWriter.WriteHeader(http.StatusBadRequest)
			_, _ = responseWriter.Write(
				[]byte(`{"detail":"voice not available","error_code":"bad_voice"}`),
			)
		},
	))
	defer server.Close()

	client := synth.NewClient(server.URL, testTimeout)

	_, err := client.GenerateSpeech(context.Background(), synth.Request{
		Text:  "Olá",
		Voice: "nope",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voice not available")
	assert.Contains(t, err.Error(), "bad_voice")
}

func TestClient_GenerateSpeech_EmptyAudio(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, _ *http.Request) {
			responseWriter.Header().Set("Content-Type", "audio/mpeg")
			responseWriter.WriteHeader(http.StatusOK)
		},
	))
	defer server.Close()

	client := synth.NewClient(server.URL, testTimeout)

	_, err := client.GenerateSpeech(context.Background(), synth.Request{
		Text:  "Olá",
		Voice: "pt-BR-FranciscaNeural",
	})
	require.ErrorIs(t, err, synth.ErrEmptyAudio)
}

func TestClient_GenerateSpeech_UnexpectedContentType(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, _ *http.Request) {
			responseWriter.Header().Set("Content-Type", "text/html")
			responseWriter.WriteHeader(http.StatusOK)
			_, _ = responseWriter.Write([]byte("<html>not audio</html>"))
		},
	))
	defer server.Close()

	client := synth.NewClient(server.URL, testTimeout)

	_, err := client.GenerateSpeech(context.Background(), synth.Request{
		Text:  "Olá",
		Voice: "pt-BR-FranciscaNeural",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected content type")
}

func TestClient_HealthCheck(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/health", request.URL.Path)
			responseWriter.WriteHeader(http.StatusOK)
		},
	))
	defer server.Close()

	client := synth.NewClient(server.URL, testTimeout)

	require.NoError(t, client.HealthCheck(context.Background()))
}

func TestClient_HealthCheck_Unhealthy(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, _ *http.Request) {
			responseWriter.WriteHeader(http.StatusServiceUnavailable)
		},
	))
	defer server.Close()

	client := synth.NewClient(server.URL, testTimeout)

	require.Error(t, client.HealthCheck(context.Background()))
}
