package cmd

import (
	"context"
	"fmt"

	"github.com/Aashish23092/ocr-text-extraction/client"
	"github.com/Aashish23092/ocr-text-extraction/client/mupdf"
	"github.com/Aashish23092/ocr-text-extraction/client/tesseract"
	"github.com/Aashish23092/ocr-text-extraction/config"
	"github.com/Aashish23092/ocr-text-extraction/logger"
	"github.com/Aashish23092/ocr-text-extraction/service"
)

// newDetector creates the process-wide OCR client. The returned func releases it.
func newDetector(ctx context.Context, cfg *config.Config) (service.Detector, func(), error) {
	log := logger.WithComponent("wire")

	switch cfg.OCRProvider {
	case config.ProviderTesseract:
		log.Info().Str("tessdata", cfg.TesseractDataPath).Str("language", cfg.TesseractLanguage).Msg("Using Tesseract OCR")
		return tesseract.NewClient(cfg.TesseractDataPath, cfg.TesseractLanguage), func() {}, nil
	case config.ProviderVision:
		visionClient, err := client.NewVisionClient(ctx, cfg.GoogleAPIKey)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("Using Google Cloud Vision OCR")
		return visionClient, func() {
			if err := visionClient.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close vision client")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown OCR provider %q", cfg.OCRProvider)
	}
}

func newExtractionService(cfg *config.Config, detector service.Detector) *service.ExtractionService {
	return service.NewExtractionService(
		service.NewDocumentSplitter(mupdf.NewRasterizer(cfg.RenderDPI, cfg.MaxPDFPages), cfg.RenderTimeout),
		service.NewExtractionAggregator(detector, cfg.OCRTimeout),
		service.NewConfidenceEstimator(cfg.FallbackConfidenceMin, cfg.FallbackConfidenceMax),
	)
}
