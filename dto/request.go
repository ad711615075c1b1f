package dto

import (
	"errors"
	"fmt"
	"mime/multipart"
)

var ErrFileRequired = errors.New("file is required")

// UploadedFile is the request-scoped view of the multipart upload.
type UploadedFile struct {
	Filename  string
	MediaType string
	Content   []byte
}

// UploadRequest represents the incoming multipart request
type UploadRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

// Validate performs basic validation on the request
func (r *UploadRequest) Validate(maxFileSize int64) error {
	if r.File == nil {
		return ErrFileRequired
	}
	if maxFileSize > 0 && r.File.Size > maxFileSize {
		return fmt.Errorf("file %s is %d bytes, limit is %d bytes", r.File.Filename, r.File.Size, maxFileSize)
	}
	return nil
}
