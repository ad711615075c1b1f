package service

import (
	"context"
	"time"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/Aashish23092/ocr-text-extraction/logger"
)

type ExtractionService struct {
	splitter   *DocumentSplitter
	aggregator *ExtractionAggregator
	estimator  *ConfidenceEstimator
}

func NewExtractionService(
	splitter *DocumentSplitter,
	aggregator *ExtractionAggregator,
	estimator *ConfidenceEstimator,
) *ExtractionService {
	return &ExtractionService{
		splitter:   splitter,
		aggregator: aggregator,
		estimator:  estimator,
	}
}

// Extract splits the upload into page images, runs OCR on each of them and
// scores the pooled annotations. Any splitter or detector failure is returned
// as is and no partial result is produced.
func (s *ExtractionService) Extract(ctx context.Context, file *dto.UploadedFile) (*dto.ExtractionResult, error) {
	log := logger.FromContext(ctx, "extraction")
	start := time.Now()

	doc, err := s.splitter.Split(ctx, file.MediaType, file.Content)
	if err != nil {
		return nil, err
	}

	aggregate, err := s.aggregator.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	confidence := DefaultConfidence
	if len(aggregate.Annotations) > 0 {
		confidence = s.estimator.Estimate(aggregate.Annotations)
	}

	result := &dto.ExtractionResult{
		OriginalFileName: file.Filename,
		ConfidenceLevel:  ToPercentage(confidence),
		ExtractedText:    aggregate.Text,
	}

	log.Info().
		Str("file", file.Filename).
		Str("media_type", file.MediaType).
		Int("bytes", len(file.Content)).
		Int("pages", len(doc.Pages)).
		Int("annotations", len(aggregate.Annotations)).
		Float64("confidence_level", result.ConfidenceLevel).
		Dur("duration", time.Since(start)).
		Msg("Extraction completed")

	return result, nil
}
