package service

import (
	"context"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/stretchr/testify/mock"
)

type mockDetector struct {
	mock.Mock
}

func (m *mockDetector) Detect(ctx context.Context, image []byte) (*dto.Detection, error) {
	args := m.Called(ctx, image)
	detection, _ := args.Get(0).(*dto.Detection)
	return detection, args.Error(1)
}

type mockRasterizer struct {
	mock.Mock
}

func (m *mockRasterizer) RenderPages(ctx context.Context, pdfPath string) ([][]byte, error) {
	args := m.Called(ctx, pdfPath)
	pages, _ := args.Get(0).([][]byte)
	return pages, args.Error(1)
}

func scored(description string, confidence float64) dto.TextAnnotation {
	return dto.TextAnnotation{Description: description, Confidence: dto.Confidence(confidence)}
}
