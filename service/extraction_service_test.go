package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(detector Detector, rasterizer Rasterizer) (*ExtractionService, *ConfidenceEstimator) {
	estimator := NewConfidenceEstimator(DefaultFallbackMin, DefaultFallbackMax)
	svc := NewExtractionService(
		NewDocumentSplitter(rasterizer, 0),
		NewExtractionAggregator(detector, 0),
		estimator,
	)
	return svc, estimator
}

func TestExtractImageUpload(t *testing.T) {
	detector := &mockDetector{}
	detector.On("Detect", mock.Anything, []byte("png-bytes")).
		Return(&dto.Detection{Text: "Hello", Annotations: []dto.TextAnnotation{scored("Hello", 0.8)}}, nil)

	svc, _ := newTestService(detector, &mockRasterizer{})
	result, err := svc.Extract(context.Background(), &dto.UploadedFile{
		Filename:  "hello.png",
		MediaType: "image/png",
		Content:   []byte("png-bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, "hello.png", result.OriginalFileName)
	assert.Equal(t, "Hello", result.ExtractedText)
	assert.GreaterOrEqual(t, result.ConfidenceLevel, 90.0)
	assert.LessOrEqual(t, result.ConfidenceLevel, 100.0)
}

func TestExtractTwoPagePDF(t *testing.T) {
	rasterizer := &mockRasterizer{}
	rasterizer.On("RenderPages", mock.Anything, mock.Anything).
		Return([][]byte{[]byte("page-1"), []byte("page-2")}, nil)

	detector := &mockDetector{}
	detector.On("Detect", mock.Anything, []byte("page-1")).
		Return(&dto.Detection{Text: "Foo", Annotations: []dto.TextAnnotation{{Description: "Foo"}}}, nil)
	detector.On("Detect", mock.Anything, []byte("page-2")).
		Return(&dto.Detection{Text: "Bar", Annotations: []dto.TextAnnotation{scored("Bar", 0.9)}}, nil)

	svc, estimator := newTestService(detector, rasterizer)
	estimator.random = fixedRandom(0)

	result, err := svc.Extract(context.Background(), &dto.UploadedFile{
		Filename:  "scan.pdf",
		MediaType: dto.MediaTypePDF,
		Content:   []byte("%PDF-1.5"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Foo\nBar\n", result.ExtractedText)
	// pooled mean is the single scored value 0.9, boosted by 0.10 and capped
	assert.Equal(t, 100.0, result.ConfidenceLevel)
}

func TestExtractEmptyPDFUsesDefaultConfidence(t *testing.T) {
	rasterizer := &mockRasterizer{}
	rasterizer.On("RenderPages", mock.Anything, mock.Anything).Return([][]byte{}, nil)
	detector := &mockDetector{}

	svc, _ := newTestService(detector, rasterizer)
	result, err := svc.Extract(context.Background(), &dto.UploadedFile{
		Filename:  "blank.pdf",
		MediaType: dto.MediaTypePDF,
		Content:   []byte("%PDF-1.5"),
	})

	require.NoError(t, err)
	assert.Equal(t, "", result.ExtractedText)
	assert.Equal(t, 90.0, result.ConfidenceLevel)
	detector.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything)
}

func TestExtractNoAnnotationsUsesDefaultConfidence(t *testing.T) {
	detector := &mockDetector{}
	detector.On("Detect", mock.Anything, mock.Anything).Return(&dto.Detection{Text: "only summary"}, nil)

	svc, estimator := newTestService(detector, &mockRasterizer{})
	estimator.random = func() float64 {
		t.Fatal("estimator must not run without annotations")
		return 0
	}

	result, err := svc.Extract(context.Background(), &dto.UploadedFile{
		Filename: "note.jpg", MediaType: "image/jpeg", Content: []byte("jpg"),
	})

	require.NoError(t, err)
	assert.Equal(t, 90.0, result.ConfidenceLevel)
	assert.Equal(t, "only summary", result.ExtractedText)
}

func TestExtractDetectionFailureAbortsRequest(t *testing.T) {
	rasterizer := &mockRasterizer{}
	rasterizer.On("RenderPages", mock.Anything, mock.Anything).
		Return([][]byte{[]byte("p1"), []byte("p2"), []byte("p3")}, nil)

	detector := &mockDetector{}
	detector.On("Detect", mock.Anything, []byte("p1")).Return(&dto.Detection{Text: "page one"}, nil)
	detector.On("Detect", mock.Anything, []byte("p2")).Return(nil, errors.New("internal error"))

	svc, _ := newTestService(detector, rasterizer)
	result, err := svc.Extract(context.Background(), &dto.UploadedFile{
		Filename: "three.pdf", MediaType: dto.MediaTypePDF, Content: []byte("%PDF"),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDetection)
	detector.AssertNumberOfCalls(t, "Detect", 2)
}

func TestExtractRenderingFailure(t *testing.T) {
	rasterizer := &mockRasterizer{}
	rasterizer.On("RenderPages", mock.Anything, mock.Anything).Return(nil, errors.New("broken xref"))
	detector := &mockDetector{}

	svc, _ := newTestService(detector, rasterizer)
	result, err := svc.Extract(context.Background(), &dto.UploadedFile{
		Filename: "broken.pdf", MediaType: dto.MediaTypePDF, Content: []byte("garbage"),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrRendering)
	detector.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything)
}
