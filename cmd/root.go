package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/ocr-text-extraction/config"
	"github.com/Aashish23092/ocr-text-extraction/logger"
)

var version = "1.0.0"

// cfg is set by Execute before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ocr-text-extraction",
	Short: "Extract text and a confidence score from images and PDFs",
	Long: `Extracts text from an uploaded image or PDF with an OCR service and
reports it together with an approximate confidence percentage.

Without a subcommand the HTTP service is started.`,
	Version: version,
	RunE:    runServe,
}

func Execute(c *config.Config) {
	cfg = c
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
