// Package mupdf renders PDF pages to PNG images with MuPDF.
package mupdf

import (
	"context"
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrTooManyPages is returned when a document exceeds the configured page limit.
var ErrTooManyPages = errors.New("PDF has too many pages")

type Rasterizer struct {
	dpi      float64
	maxPages int
}

// NewRasterizer creates a rasterizer rendering at dpi. maxPages of zero means
// no limit.
func NewRasterizer(dpi float64, maxPages int) *Rasterizer {
	return &Rasterizer{
		dpi:      dpi,
		maxPages: maxPages,
	}
}

// RenderPages renders every page of the PDF at pdfPath, in page order. A
// document without pages yields an empty slice.
func (r *Rasterizer) RenderPages(ctx context.Context, pdfPath string) ([][]byte, error) {
	if r.maxPages > 0 {
		count, err := api.PageCountFile(pdfPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read page count: %w", err)
		}
		if count > r.maxPages {
			return nil, fmt.Errorf("%w: %d pages, limit is %d", ErrTooManyPages, count, r.maxPages)
		}
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	images := make([][]byte, 0, pageCount)
	for n := 0; n < pageCount; n++ {
		// MuPDF calls cannot be interrupted, check between pages
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImagePNG(n, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", n+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
