package service

import (
	"errors"
	"fmt"
)

var (
	// ErrRendering matches any *RenderingError.
	ErrRendering = errors.New("pdf rendering failed")

	// ErrDetection matches any *DetectionError.
	ErrDetection = errors.New("text detection failed")
)

// RenderingError is returned when a PDF cannot be opened or a page cannot be rasterized.
type RenderingError struct {
	Op  string
	Err error
}

func (e *RenderingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RenderingError) Unwrap() error {
	return e.Err
}

func (e *RenderingError) Is(target error) bool {
	return target == ErrRendering
}

// DetectionError is returned when the OCR collaborator fails for a page. It stops
// the whole extraction; text of earlier pages is discarded.
type DetectionError struct {
	Page int
	Err  error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *DetectionError) Unwrap() error {
	return e.Err
}

func (e *DetectionError) Is(target error) bool {
	return target == ErrDetection
}
