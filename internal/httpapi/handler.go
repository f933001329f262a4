// Package httpapi exposes the audio relay pipeline over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/book-expert/logger"
	"github.com/gin-gonic/gin"

	"github.com/book-expert/audio-relay/internal/core"
	"github.com/book-expert/audio-relay/internal/relay"
)

// Caller-facing response messages. The relay predates this service as a
// Portuguese-language API; the wire-level messages are kept verbatim so
// existing consumers keep working.
const (
	detailInvalidKey     = "Chave inválida!"
	detailInvalidVoice   = "Voz inválida. Use 'male' ou 'female'."
	detailInvalidBody    = "Corpo da requisição inválido."
	detailAudioMissing   = "Arquivo de áudio não foi gerado."
	detailInternalError  = "Erro interno do servidor"
	detailUploadErrorFmt = "Erro no upload: %s"
	healthMessage        = "audio-relay está funcionando"
	statusOK             = "OK"
	statusError          = "ERROR"
)

// AudioGenerator is the pipeline contract the handler drives.
type AudioGenerator interface {
	GenerateAudio(
		ctx context.Context,
		req relay.GenerateRequest,
		suppliedKey string,
	) (string, error)
}

// HostDiagnostics is the hosting-provider introspection contract used by the
// diagnostics endpoints. It never triggers uploads.
type HostDiagnostics interface {
	Snapshot() core.HostSnapshot
	SampleURL() (string, error)
}

// generateAudioRequest is the JSON body of POST /gerar-audio.
type generateAudioRequest struct {
	UUID      string `json:"uuid"`
	Text      string `json:"text"`
	VoiceType string `json:"voice_type"`
}

// errorResponse is the JSON error envelope for every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

// healthResponse is the fixed-shape record returned by GET /health.
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// hostConfigRecord mirrors the loaded hosting-provider configuration.
type hostConfigRecord struct {
	CloudName       string `json:"cloud_name"`
	APIKey          string `json:"api_key"`
	APISecretLength int    `json:"api_secret_length"`
	Secure          bool   `json:"secure"`
}

// debugHostResponse is the fixed-shape record returned by GET /debug-cloudinary.
type debugHostResponse struct {
	Status  string           `json:"status"`
	Config  hostConfigRecord `json:"config"`
	TestURL string           `json:"test_url"`
}

// debugHostErrorResponse reports a failed URL-construction smoke test.
type debugHostErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Type   string `json:"type"`
}

// testHostResponse is the fixed-shape record returned by GET /test-cloudinary.
type testHostResponse struct {
	Status              string `json:"status"`
	CloudName           string `json:"cloud_name"`
	APIKey              string `json:"api_key"`
	APISecretConfigured bool   `json:"api_secret_configured"`
	APISecretLength     int    `json:"api_secret_length"`
}

// Handler holds the dependencies of the HTTP surface.
type Handler struct {
	generator AudioGenerator
	host      HostDiagnostics
	log       *logger.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(generator AudioGenerator, host HostDiagnostics, log *logger.Logger) *Handler {
	return &Handler{
		generator: generator,
		host:      host,
		log:       log,
	}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/gerar-audio", h.generateAudio)
	router.GET("/health", h.health)
	router.GET("/debug-cloudinary", h.debugHost)
	router.GET("/test-cloudinary", h.testHost)

	return router
}

// generateAudio drives one request through the relay pipeline and maps its
// error taxonomy to transport status codes.
func (h *Handler) generateAudio(c *gin.Context) {
	suppliedKey := c.Query("key")

	var body generateAudioRequest

	bindErr := c.ShouldBindJSON(&body)
	if bindErr != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: detailInvalidBody})

		return
	}

	url, err := h.generator.GenerateAudio(
		c.Request.Context(),
		relay.GenerateRequest{
			ID:    body.UUID,
			Text:  body.Text,
			Voice: body.VoiceType,
		},
		suppliedKey,
	)
	if err != nil {
		h.writeGenerateError(c, err)

		return
	}

	c.String(http.StatusOK, url)
}

// writeGenerateError translates pipeline errors into HTTP responses. Only the
// upload-provider error text is exposed to the caller; everything else gets a
// generic message with the detail written to the process log.
func (h *Handler) writeGenerateError(c *gin.Context, err error) {
	var uploadErr *relay.UploadError

	switch {
	case errors.Is(err, relay.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Detail: detailInvalidKey})
	case errors.Is(err, relay.ErrUnknownVoice):
		c.JSON(http.StatusBadRequest, errorResponse{Detail: detailInvalidVoice})
	case errors.Is(err, relay.ErrAudioNotGenerated):
		h.log.Error("Audio file missing after synthesis: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: detailAudioMissing})
	case errors.As(err, &uploadErr):
		h.log.Error("Upload failed: %v", uploadErr)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Detail: fmt.Sprintf(detailUploadErrorFmt, uploadErr.Unwrap()),
		})
	default:
		h.log.Error("Audio generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: detailInternalError})
	}
}

// health reports process liveness.
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  statusOK,
		Message: healthMessage,
	})
}

// debugHost reports the loaded provider configuration and exercises the
// SDK's URL-construction path as a smoke test.
func (h *Handler) debugHost(c *gin.Context) {
	snapshot := h.host.Snapshot()

	testURL, err := h.host.SampleURL()
	if err != nil {
		c.JSON(http.StatusOK, debugHostErrorResponse{
			Status: statusError,
			Error:  err.Error(),
			Type:   fmt.Sprintf("%T", err),
		})

		return
	}

	c.JSON(http.StatusOK, debugHostResponse{
		Status: statusOK,
		Config: hostConfigRecord{
			CloudName:       snapshot.CloudName,
			APIKey:          snapshot.APIKey,
			APISecretLength: snapshot.APISecretLength,
			Secure:          snapshot.Secure,
		},
		TestURL: testURL,
	})
}

// testHost reports whether provider credentials are present without exposing
// the secret itself.
func (h *Handler) testHost(c *gin.Context) {
	snapshot := h.host.Snapshot()

	c.JSON(http.StatusOK, testHostResponse{
		Status:              statusOK,
		CloudName:           snapshot.CloudName,
		APIKey:              snapshot.APIKey,
		APISecretConfigured: snapshot.APISecretLength > 0,
		APISecretLength:     snapshot.APISecretLength,
	})
}
