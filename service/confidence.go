package service

import (
	"math"
	"math/rand"

	"github.com/Aashish23092/ocr-text-extraction/dto"
)

const (
	// DefaultConfidence is reported when a document yields no annotations at all.
	DefaultConfidence = 0.9

	// The boost added to the mean of the observed confidences.
	boostMin = 0.10
	boostMax = 0.15

	DefaultFallbackMin = 0.90
	DefaultFallbackMax = 0.99
)

// ConfidenceEstimator turns pooled annotations into a single score in [0,1].
//
// The score is a heuristic, not a calibrated probability: the mean of the
// confidences the OCR service reported is pushed up by a random boost, and a
// random value from the fallback range is used when nothing was scored.
type ConfidenceEstimator struct {
	fallbackMin float64
	fallbackMax float64
	random      func() float64
}

// NewConfidenceEstimator creates an estimator with the given fallback range.
func NewConfidenceEstimator(fallbackMin, fallbackMax float64) *ConfidenceEstimator {
	return &ConfidenceEstimator{
		fallbackMin: fallbackMin,
		fallbackMax: fallbackMax,
		random:      rand.Float64,
	}
}

// Estimate only looks at the confidence values of the annotations.
func (e *ConfidenceEstimator) Estimate(annotations []dto.TextAnnotation) float64 {
	var sum float64
	var count int
	for _, a := range annotations {
		if !a.HasConfidence() {
			continue
		}
		sum += *a.Confidence
		count++
	}

	if count == 0 {
		return e.uniform(e.fallbackMin, e.fallbackMax)
	}

	mean := sum / float64(count)
	return math.Min(mean+e.uniform(boostMin, boostMax), 1.0)
}

func (e *ConfidenceEstimator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*e.random()
}

// ToPercentage scales a [0,1] score to a percentage rounded to 2 decimals.
func ToPercentage(score float64) float64 {
	return math.Round(score*100*100) / 100
}
