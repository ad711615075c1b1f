package service

import (
	"context"
	"strings"
	"time"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/Aashish23092/ocr-text-extraction/logger"
)

// Detector is the OCR collaborator. Detect returns the whole-image transcription
// and the per-region annotations without the summary entry. An empty Text means
// nothing was detected.
type Detector interface {
	Detect(ctx context.Context, image []byte) (*dto.Detection, error)
}

// Aggregate is the combined OCR output of a document.
type Aggregate struct {
	Text        string
	Annotations []dto.TextAnnotation
}

// ExtractionAggregator runs OCR page by page and pools the results.
type ExtractionAggregator struct {
	detector Detector
	timeout  time.Duration
}

// NewExtractionAggregator creates an aggregator. A zero timeout disables the
// per-call deadline.
func NewExtractionAggregator(detector Detector, timeout time.Duration) *ExtractionAggregator {
	return &ExtractionAggregator{
		detector: detector,
		timeout:  timeout,
	}
}

// Extract calls the detector once per page, in order. The first failure aborts
// the document. Pages without text contribute nothing, not even a line break.
func (a *ExtractionAggregator) Extract(ctx context.Context, doc *dto.Document) (*Aggregate, error) {
	log := logger.FromContext(ctx, "aggregator")

	var text strings.Builder
	var annotations []dto.TextAnnotation

	for _, page := range doc.Pages {
		detection, err := a.detect(ctx, page.Data)
		if err != nil {
			return nil, &DetectionError{Page: page.Number, Err: err}
		}
		if detection == nil || detection.Text == "" {
			log.Debug().Int("page", page.Number).Msg("No text detected")
			continue
		}

		text.WriteString(detection.Text)
		if doc.Paged {
			text.WriteString("\n")
		}
		annotations = append(annotations, detection.Annotations...)

		log.Debug().
			Int("page", page.Number).
			Int("chars", len(detection.Text)).
			Int("annotations", len(detection.Annotations)).
			Msg("Page detected")
	}

	return &Aggregate{
		Text:        text.String(),
		Annotations: annotations,
	}, nil
}

func (a *ExtractionAggregator) detect(ctx context.Context, image []byte) (*dto.Detection, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.detector.Detect(ctx, image)
}
