package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/service"
)

// errorCode maps a failure to the HTTP status and error code sent to clients
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND"
	case errors.Is(err, dto.ErrUnknownField):
		return http.StatusBadRequest, "UNKNOWN_FIELD"
	case errors.Is(err, service.ErrTokenIndexOutOfRange):
		return http.StatusBadRequest, "TOKEN_OUT_OF_RANGE"
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT"
	case errors.Is(err, dto.ErrUnsupportedFileType), errors.Is(err, service.ErrInvalidPDF):
		return http.StatusBadRequest, "INVALID_DOCUMENT"
	case errors.Is(err, service.ErrPasswordRequired):
		return http.StatusUnauthorized, "PASSWORD_REQUIRED"
	case errors.Is(err, service.ErrNoExtractableText):
		return http.StatusUnprocessableEntity, "NO_EXTRACTABLE_TEXT"
	}
	return http.StatusInternalServerError, "EXTRACTION_FAILED"
}

// sendError sends a structured error response
func sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}

// sendServiceError sends err with the status its kind maps to
func sendServiceError(c *gin.Context, message string, err error) {
	status, code := errorCode(err)
	sendError(c, status, code, message, err)
}
