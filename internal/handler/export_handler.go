package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/service"
	"github.com/noah-isme/enroll-flow-api/pkg/response"
)

// ExportHandler exposes summary export and signed download endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Export the pricing summary
// @Tags Exports
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ExportSummaryRequest true "Export format"
// @Success 201 {object} response.Envelope
// @Router /sessions/{id}/summary/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportSummaryRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.exports.ExportSummary(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Download godoc
// @Summary Download an exported summary
// @Tags Exports
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /exports/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	f, err := h.exports.OpenDownload(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	name := filepath.Base(f.Name())
	c.Header("Content-Disposition", "attachment; filename=\""+name+"\"")
	c.Header("Content-Type", contentTypeFor(name))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, f)
}

func contentTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
