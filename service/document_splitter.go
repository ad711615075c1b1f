package service

import (
	"context"
	"os"
	"time"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/Aashish23092/ocr-text-extraction/logger"
)

// Rasterizer renders every page of the PDF at pdfPath to an encoded image,
// in page order.
type Rasterizer interface {
	RenderPages(ctx context.Context, pdfPath string) ([][]byte, error)
}

// DocumentSplitter turns an upload into the page images handed to OCR.
type DocumentSplitter struct {
	rasterizer Rasterizer
	timeout    time.Duration
}

// NewDocumentSplitter creates a splitter. A zero timeout disables the deadline
// on rasterization.
func NewDocumentSplitter(rasterizer Rasterizer, timeout time.Duration) *DocumentSplitter {
	return &DocumentSplitter{
		rasterizer: rasterizer,
		timeout:    timeout,
	}
}

// Split returns the upload as a single page unless mediaType is PDF, in which
// case every page is rasterized. The temporary PDF is removed on every path.
func (s *DocumentSplitter) Split(ctx context.Context, mediaType string, content []byte) (*dto.Document, error) {
	if mediaType != dto.MediaTypePDF {
		return &dto.Document{
			Pages: []dto.PageImage{{Number: 1, Data: content}},
		}, nil
	}

	log := logger.FromContext(ctx, "splitter")

	tempFile, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return nil, &RenderingError{Op: "create temp pdf", Err: err}
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			log.Warn().Err(err).Str("path", tempFile.Name()).Msg("Failed to remove temp PDF")
		}
	}()

	if _, err := tempFile.Write(content); err != nil {
		tempFile.Close()
		return nil, &RenderingError{Op: "write temp pdf", Err: err}
	}
	if err := tempFile.Close(); err != nil {
		return nil, &RenderingError{Op: "write temp pdf", Err: err}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	images, err := s.rasterizer.RenderPages(ctx, tempFile.Name())
	if err != nil {
		return nil, &RenderingError{Op: "render pages", Err: err}
	}

	pages := make([]dto.PageImage, 0, len(images))
	for i, img := range images {
		pages = append(pages, dto.PageImage{Number: i + 1, Data: img})
	}

	log.Debug().Int("pages", len(pages)).Int("bytes", len(content)).Msg("PDF rasterized")

	return &dto.Document{Pages: pages, Paged: true}, nil
}
