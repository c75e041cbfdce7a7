package dto

import (
	"errors"
	"mime/multipart"
	"strings"
)

// DocumentExtractionRequest represents an uploaded PDF
type DocumentExtractionRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Password string                `form:"password"`
}

// Validate performs basic validation on the request
func (r *DocumentExtractionRequest) Validate() error {
	if r.File == nil {
		return errors.New("file is required")
	}
	if !strings.HasSuffix(strings.ToLower(r.File.Filename), ".pdf") {
		return ErrUnsupportedFileType
	}
	return nil
}

// TextExtractionRequest carries text already produced by an upstream extractor
type TextExtractionRequest struct {
	Text string `json:"text"`
}

// SelectFieldRequest activates a field for manual correction
type SelectFieldRequest struct {
	Key string `json:"key" binding:"required"`
}
