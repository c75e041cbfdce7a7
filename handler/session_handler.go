package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/service"
)

type SessionHandler struct {
	invoiceService *service.InvoiceService
	removeCommas   bool
}

func NewSessionHandler(invoiceService *service.InvoiceService, removeCommas bool) *SessionHandler {
	return &SessionHandler{
		invoiceService: invoiceService,
		removeCommas:   removeCommas,
	}
}

// GetSession handles GET /sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	snapshot, err := h.invoiceService.Snapshot(c.Param("id"))
	if err != nil {
		sendServiceError(c, "Failed to load session", err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SelectField handles POST /sessions/:id/select
func (h *SessionHandler) SelectField(c *gin.Context) {
	var request dto.SelectFieldRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Body must be JSON with a 'key' field", err)
		return
	}

	snapshot, err := h.invoiceService.SelectField(c.Param("id"), request.Key)
	if err != nil {
		sendServiceError(c, "Failed to select field", err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ToggleToken handles POST /sessions/:id/tokens/:index/toggle
func (h *SessionHandler) ToggleToken(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Token index must be an integer", err)
		return
	}

	snapshot, err := h.invoiceService.ToggleToken(c.Param("id"), index)
	if err != nil {
		sendServiceError(c, "Failed to toggle token", err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Finalize handles POST /sessions/:id/finalize
func (h *SessionHandler) Finalize(c *gin.Context) {
	response, err := h.invoiceService.Finalize(c.Param("id"))
	if err != nil {
		sendServiceError(c, "Failed to finalize session", err)
		return
	}

	log.Printf("Session %s finalized with %d warnings", response.SessionID, len(response.Validation.Warnings))
	c.JSON(http.StatusOK, response)
}

// Export handles GET /sessions/:id/export?format=text|values|json|xlsx&removeCommas=bool
func (h *SessionHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		sendServiceError(c, "Supported formats: text, values, json, xlsx", err)
		return
	}

	opts := service.ExportOptions{RemoveCommas: h.removeCommas}
	if raw, ok := c.GetQuery("removeCommas"); ok {
		if opts.RemoveCommas, err = strconv.ParseBool(raw); err != nil {
			sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "removeCommas must be true or false", err)
			return
		}
	}

	result, err := h.invoiceService.Export(c.Param("id"), format, opts)
	if err != nil {
		sendServiceError(c, "Failed to export session", err)
		return
	}

	if format == service.FormatXLSX {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="factura-%s.%s"`, c.Param("id"), result.Extension))
	}
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// CloseSession handles DELETE /sessions/:id
func (h *SessionHandler) CloseSession(c *gin.Context) {
	if err := h.invoiceService.Close(c.Param("id")); err != nil {
		sendServiceError(c, "Failed to close session", err)
		return
	}
	c.Status(http.StatusNoContent)
}
