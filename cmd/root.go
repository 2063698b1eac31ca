package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/textwaves/censor-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "censor-api",
	Short: "TextWaves video censoring API server",
	Long: `TextWaves Censor API - a video subtitle and profanity censoring service

Upload a video, have its speech transcribed, review and edit the generated
subtitles, then render a final video with burned-in subtitles and audio
beeps over censored intervals.

Features:
  • Speech transcription via Whisper
  • Automatic forbidden-word masking with per-segment beep intervals
  • Editable subtitles and beep overrides before the final render
  • Live progress streaming via Server-Sent Events
  • Per-owner processing history`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// initConfig loads the configuration when a command needs it
// This is called lazily only when a command that needs config runs
func initConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && cmd.Name() == "version" {
		// Version command doesn't need config
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
