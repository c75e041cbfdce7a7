package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/service"
)

// multipartOverhead covers the form boundaries and the password field around the file
const multipartOverhead = 64 << 10

type DocumentHandler struct {
	invoiceService *service.InvoiceService
	maxFileSize    int64
}

func NewDocumentHandler(invoiceService *service.InvoiceService, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{
		invoiceService: invoiceService,
		maxFileSize:    maxFileSize,
	}
}

// ExtractDocument handles the POST /documents/extract endpoint
func (h *DocumentHandler) ExtractDocument(c *gin.Context) {
	log.Println("Received document extraction request")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+multipartOverhead)

	var request dto.DocumentExtractionRequest
	if err := c.ShouldBind(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the maximum upload size", err)
			return
		}
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "A PDF file is required in the 'file' field", err)
		return
	}
	if err := request.Validate(); err != nil {
		sendServiceError(c, "Invalid upload", err)
		return
	}
	if request.File.Size > h.maxFileSize {
		sendError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the maximum upload size", nil)
		return
	}

	file, err := request.File.Open()
	if err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read uploaded file", err)
		return
	}

	log.Printf("Processing %s (%d bytes)", request.File.Filename, len(data))

	response, err := h.invoiceService.ProcessPDF(c.Request.Context(), data, request.Password)
	if err != nil {
		sendServiceError(c, "Failed to extract document", err)
		return
	}

	log.Println("Document extraction completed successfully")
	c.JSON(http.StatusOK, response)
}

// ExtractText handles the POST /text/extract endpoint
func (h *DocumentHandler) ExtractText(c *gin.Context) {
	log.Println("Received text extraction request")

	var request dto.TextExtractionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Body must be JSON with a 'text' field", err)
		return
	}

	response, err := h.invoiceService.ProcessText(c.Request.Context(), request.Text)
	if err != nil {
		sendServiceError(c, "Failed to extract text", err)
		return
	}

	c.JSON(http.StatusOK, response)
}
