// main package for the audio-relay service
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/book-expert/logger"
	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"

	"github.com/book-expert/audio-relay/internal/config"
	"github.com/book-expert/audio-relay/internal/core"
	"github.com/book-expert/audio-relay/internal/httpapi"
	"github.com/book-expert/audio-relay/internal/mediahost"
	"github.com/book-expert/audio-relay/internal/notify"
	"github.com/book-expert/audio-relay/internal/relay"
	"github.com/book-expert/audio-relay/internal/synth"
)

func setupLogger(logPath string) (*logger.Logger, error) {
	log, err := logger.New(logPath, "audio-relay.log")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

func run() error {
	// 1. Create a temporary logger for the bootstrap process.
	bootstrapLog, err := setupLogger(os.TempDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to create bootstrap logger: %v\n", err)

		return err
	}

	// 2. Load configuration using the central configurator.
	cfg, err := config.Load(bootstrapLog)
	if err != nil {
		bootstrapLog.Error("Failed to load configuration: %v", err)

		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 3. Initialize the final logger based on the loaded configuration.
	finalLog, err := setupLogger(cfg.Paths.BaseLogsDir)
	if err != nil {
		bootstrapLog.Error("Failed to create final logger: %v", err)

		return fmt.Errorf("failed to create final logger: %w", err)
	}

	defer func() {
		closeErr := finalLog.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing final logger: %v\n", closeErr)
		}
	}()

	return serve(cfg, finalLog)
}

// serve wires the pipeline together and runs the HTTP server until the
// process receives SIGINT or SIGTERM.
func serve(cfg *config.Config, log *logger.Logger) error {
	synthesisTimeout := time.Duration(cfg.Synthesis.TimeoutSeconds) * time.Second

	client := synth.NewClient(cfg.Synthesis.ServiceURL, synthesisTimeout)
	engine := synth.NewEngine(client, synthesisTimeout, log)

	host, err := mediahost.New(mediahost.Options{
		CloudName:    cfg.Secrets.CloudinaryCloudName,
		APIKey:       cfg.Secrets.CloudinaryAPIKey,
		APISecret:    cfg.Secrets.CloudinaryAPISecret,
		ResourceType: cfg.Media.ResourceType,
		Timeout:      time.Duration(cfg.Media.TimeoutSeconds) * time.Second,
		Secure:       cfg.Media.Secure,
	})
	if err != nil {
		return fmt.Errorf("failed to create media host: %w", err)
	}

	notifier, natsConnection, err := setupNotifier(cfg, log)
	if err != nil {
		return err
	}

	if natsConnection != nil {
		defer natsConnection.Close()
	}

	service := relay.NewService(
		engine,
		host,
		notifier,
		cfg.Synthesis.Voices,
		cfg.Secrets.AccessKey,
		cfg.Paths.WorkDir,
		log,
	)

	gin.SetMode(gin.ReleaseMode)

	handler := httpapi.NewHandler(service, host, log)
	server := httpapi.NewServer(
		cfg.Server.ListenAddr,
		handler.Router(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second,
		log,
	)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	log.System("audio-relay initialized. Listening on %s", cfg.Server.ListenAddr)

	return server.Run(ctx)
}

// setupNotifier connects to NATS when a URL is configured. Event publication
// is optional: with no URL the relay runs without it.
func setupNotifier(
	cfg *config.Config,
	log *logger.Logger,
) (core.Notifier, *nats.Conn, error) {
	if cfg.NATS.URL == "" {
		log.Info("NATS url not configured, event publication disabled.")

		return nil, nil, nil
	}

	natsConnection, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}

	return notify.New(natsConnection, cfg.NATS.AudioPublishedSubject), natsConnection, nil
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service exited with error: %v\n", err)
		os.Exit(1)
	}
}
