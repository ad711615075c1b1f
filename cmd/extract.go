package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/Aashish23092/ocr-text-extraction/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract text from a local image or PDF",
	Long: `Runs the same extraction as the HTTP service on a local file and prints
the result as JSON. The media type is taken from the file extension, or
sniffed from the content when the extension is unknown.`,
	Example: `  ocr-text-extraction extract receipt.jpg
  ocr-text-extraction extract contract.pdf -o result.json --timeout 120`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	path := args[0]

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	upload := &dto.UploadedFile{
		Filename:  filepath.Base(path),
		MediaType: detectMediaType(path, content),
		Content:   content,
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	detector, closeDetector, err := newDetector(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDetector()

	log.Info().
		Str("file", path).
		Str("media_type", upload.MediaType).
		Int("bytes", len(content)).
		Msg("Extracting text")

	result, err := newExtractionService(cfg, detector).Extract(ctx, upload)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	out = append(out, '\n')

	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	log.Info().Str("output", outputPath).Msg("Result written")
	return nil
}

// detectMediaType mirrors what a browser would declare for the upload.
func detectMediaType(path string, content []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		mediaType, _, err := mime.ParseMediaType(byExt)
		if err == nil {
			return mediaType
		}
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(content))
	return mediaType
}
