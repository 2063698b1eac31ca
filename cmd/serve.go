package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/textwaves/censor-api/api"
	"github.com/textwaves/censor-api/api/types"
	"github.com/textwaves/censor-api/internal/database"
	"github.com/textwaves/censor-api/internal/models"
	"github.com/textwaves/censor-api/internal/progress"
	"github.com/textwaves/censor-api/internal/services/cleanup"
	"github.com/textwaves/censor-api/internal/services/pipeline"
	"github.com/textwaves/censor-api/internal/services/tasks"
	"github.com/textwaves/censor-api/internal/services/transcriber"
	"github.com/textwaves/censor-api/internal/session"
	"github.com/textwaves/censor-api/pkg/config"
	"github.com/textwaves/censor-api/pkg/ffmpeg"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the TextWaves Censor API server with the configured settings.

The server accepts video uploads, runs the transcription and censoring
pipeline, streams processing progress, and serves rendered videos.

Example:
  censor-api serve
  censor-api serve --port 9090
  censor-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	// Initialize database and run migrations
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Error closing database: %v\n", closeErr)
		}
	}()

	if err := db.AutoMigrate(&models.VideoTask{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := os.MkdirAll(cfg.Storage.UploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Build the processing services
	registry := progress.NewRegistry()
	sessions := session.NewStore(cfg.Storage.UploadDir)
	taskService := tasks.NewService(tasks.NewRepository(db.DB))

	media := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)
	if err := media.ValidateBinaries(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	whisper := transcriber.New(transcriber.Config{
		BinaryPath: cfg.Whisper.BinaryPath,
		ModelPath:  cfg.Whisper.ModelPath,
		Language:   cfg.Whisper.Language,
		Timeout:    cfg.Whisper.Timeout,
	})

	orchestrator := pipeline.NewOrchestrator(pipeline.Config{
		Registry:       registry,
		Tasks:          taskService,
		Sessions:       sessions,
		Extractor:      media,
		Transcriber:    whisper,
		Renderer:       media,
		UploadDir:      cfg.Storage.UploadDir,
		ForbiddenWords: cfg.Censor.DefaultForbiddenWords,
		BeepFrequency:  cfg.Censor.BeepFrequency,
		BeepVolume:     cfg.Censor.BeepVolume,
		DuckingVolume:  cfg.Censor.DuckingVolume,
	})

	// Sweep stale temp and session files left behind by abandoned runs
	cleaner := cleanup.NewService(cfg.Storage.UploadDir, cfg.Storage.MaxTempAge, cfg.Storage.CleanupInterval)
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	cleaner.Start(cleanupCtx)
	defer cleaner.Stop()

	// Create HTTP server
	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address)
	server.SetDatabase(db)
	server.SetDependencies(&types.Dependencies{
		DB:           db,
		Progress:     registry,
		Sessions:     sessions,
		TaskService:  taskService,
		Orchestrator: orchestrator,
	})

	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Printf("Server is ready to handle requests at %s\n", address)

	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}
