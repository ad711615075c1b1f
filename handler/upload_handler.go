package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/Aashish23092/ocr-text-extraction/logger"
	"github.com/Aashish23092/ocr-text-extraction/service"
)

// Extractor turns an upload into an extraction result.
type Extractor interface {
	Extract(ctx context.Context, file *dto.UploadedFile) (*dto.ExtractionResult, error)
}

type UploadHandler struct {
	extractor   Extractor
	maxFileSize int64
}

func NewUploadHandler(extractor Extractor, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		extractor:   extractor,
		maxFileSize: maxFileSize,
	}
}

// UploadFile handles the POST /uploadfile/ endpoint
func (h *UploadHandler) UploadFile(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), "upload")

	var request dto.UploadRequest
	if err := c.ShouldBind(&request); err != nil {
		h.sendError(c, fmt.Errorf("failed to read multipart file: %w", err))
		return
	}
	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, err)
		return
	}

	upload, err := readUpload(request.File)
	if err != nil {
		h.sendError(c, err)
		return
	}

	log.Info().
		Str("file", upload.Filename).
		Str("media_type", upload.MediaType).
		Int("bytes", len(upload.Content)).
		Msg("Received upload")

	result, err := h.extractor.Extract(c.Request.Context(), upload)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// readUpload reads the uploaded content exactly once.
func readUpload(fileHeader *multipart.FileHeader) (*dto.UploadedFile, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return &dto.UploadedFile{
		Filename:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get("Content-Type"),
		Content:   content,
	}, nil
}

// sendError maps an extraction failure to a structured 500 response
func (h *UploadHandler) sendError(c *gin.Context, err error) {
	log := logger.FromContext(c.Request.Context(), "upload")

	var renderErr *service.RenderingError
	var detectErr *service.DetectionError

	response := dto.ErrorResponse{Code: http.StatusInternalServerError}
	switch {
	case errors.As(err, &renderErr):
		response.Error = dto.ErrCodeRendering
		response.Message = fmt.Sprintf("Error converting PDF to images: %v", renderErr)
		log.Error().Err(err).Msg("PDF rendering failed")
	case errors.As(err, &detectErr):
		response.Error = dto.ErrCodeDetection
		response.Message = fmt.Sprintf("Error during text detection: %v", detectErr)
		log.Error().Err(err).Int("page", detectErr.Page).Msg("Text detection failed")
	default:
		response.Error = dto.ErrCodeUnexpected
		response.Message = fmt.Sprintf("Unexpected error: %v", err)
		log.Error().
			Err(err).
			Str("error_type", fmt.Sprintf("%T", err)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("content_type", c.ContentType()).
			Int64("content_length", c.Request.ContentLength).
			Msg("Unexpected error processing upload")
	}

	c.JSON(response.Code, response)
}
