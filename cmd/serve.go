package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Aashish23092/ocr-text-extraction/handler"
	"github.com/Aashish23092/ocr-text-extraction/logger"
	"github.com/Aashish23092/ocr-text-extraction/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP extraction service",
	Example: `  # Listen on the configured SERVER_HOST:SERVER_PORT (default 127.0.0.1:8006)
  ocr-text-extraction serve

  # Upload a document
  curl -F "file=@scan.pdf;type=application/pdf" http://127.0.0.1:8006/uploadfile/`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	detector, closeDetector, err := newDetector(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDetector()

	gin.SetMode(gin.ReleaseMode)
	uploadHandler := handler.NewUploadHandler(newExtractionService(cfg, detector), cfg.MaxFileSize)
	router := handler.NewRouter(uploadHandler)

	log.Info().
		Str("addr", cfg.Addr()).
		Str("ocr_provider", cfg.OCRProvider).
		Msg("Starting OCR Text Extraction Service")

	return server.New(cfg.Addr(), router, cfg.ShutdownTimeout).Run(ctx)
}
