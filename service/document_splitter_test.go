package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSplitImagePassesContentThrough(t *testing.T) {
	rasterizer := &mockRasterizer{}
	splitter := NewDocumentSplitter(rasterizer, 0)

	content := []byte("\x89PNG fake image")
	doc, err := splitter.Split(context.Background(), "image/png", content)

	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, content, doc.Pages[0].Data)
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.False(t, doc.Paged)
	rasterizer.AssertNotCalled(t, "RenderPages", mock.Anything, mock.Anything)
}

func TestSplitPDFRendersPagesInOrder(t *testing.T) {
	content := []byte("%PDF-1.7 three pages")
	var tempPath string

	rasterizer := &mockRasterizer{}
	rasterizer.On("RenderPages", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			tempPath = args.String(1)
			written, err := os.ReadFile(tempPath)
			require.NoError(t, err)
			assert.Equal(t, content, written)
		}).
		Return([][]byte{[]byte("p1"), []byte("p2"), []byte("p3")}, nil)

	doc, err := NewDocumentSplitter(rasterizer, 0).Split(context.Background(), dto.MediaTypePDF, content)

	require.NoError(t, err)
	assert.True(t, doc.Paged)
	require.Len(t, doc.Pages, 3)
	for i, want := range []string{"p1", "p2", "p3"} {
		assert.Equal(t, i+1, doc.Pages[i].Number)
		assert.Equal(t, want, string(doc.Pages[i].Data))
	}

	_, statErr := os.Stat(tempPath)
	assert.True(t, os.IsNotExist(statErr), "temp PDF must be removed")
}

func TestSplitPDFWithoutPages(t *testing.T) {
	rasterizer := &mockRasterizer{}
	rasterizer.On("RenderPages", mock.Anything, mock.Anything).Return([][]byte{}, nil)

	doc, err := NewDocumentSplitter(rasterizer, 0).Split(context.Background(), dto.MediaTypePDF, []byte("%PDF-1.4"))

	require.NoError(t, err)
	assert.Empty(t, doc.Pages)
	assert.True(t, doc.Paged)
}

func TestSplitPDFRenderFailure(t *testing.T) {
	var tempPath string
	cause := errors.New("cannot open document")

	rasterizer := &mockRasterizer{}
	rasterizer.On("RenderPages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { tempPath = args.String(1) }).
		Return(nil, cause)

	doc, err := NewDocumentSplitter(rasterizer, 0).Split(context.Background(), dto.MediaTypePDF, []byte("not a pdf"))

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrRendering)
	assert.ErrorIs(t, err, cause)

	var renderErr *RenderingError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, renderErr.Error(), "cannot open document")

	_, statErr := os.Stat(tempPath)
	assert.True(t, os.IsNotExist(statErr), "temp PDF must be removed on failure")
}

func TestSplitPDFTimeoutIsRenderingError(t *testing.T) {
	rasterizer := &mockRasterizer{}
	rasterizer.On("RenderPages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	_, err := NewDocumentSplitter(rasterizer, 10*time.Millisecond).Split(context.Background(), dto.MediaTypePDF, []byte("%PDF"))

	assert.ErrorIs(t, err, ErrRendering)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSplitPDFTempFileFailureIsRenderingError(t *testing.T) {
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))
	rasterizer := &mockRasterizer{}

	doc, err := NewDocumentSplitter(rasterizer, 0).Split(context.Background(), dto.MediaTypePDF, []byte("%PDF"))

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrRendering)

	var renderErr *RenderingError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "create temp pdf", renderErr.Op)
	rasterizer.AssertNotCalled(t, "RenderPages", mock.Anything, mock.Anything)
}
