package handler

import (
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/briefing/backend/internal/application/summary"
	"github.com/briefing/backend/internal/infrastructure/logger"
	infra "github.com/briefing/backend/internal/infrastructure/printing"
	"github.com/briefing/backend/internal/infrastructure/render"
	"github.com/briefing/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SummaryHandler serves the executive summary document and its print/export API
type SummaryHandler struct {
	BaseHandler
	service *summary.Service
	exports *infra.ExportStore
	assets  fs.FS
}

// NewSummaryHandler creates a SummaryHandler. exports may be nil when PDF storage is disabled.
func NewSummaryHandler(service *summary.Service, exports *infra.ExportStore) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		exports: exports,
		assets:  render.Assets(),
	}
}

// AssetPrefix returns the URL path the document's assets are served under
func (h *SummaryHandler) AssetPrefix() string {
	return h.service.AssetPrefix()
}

// GetPage serves the rendered document. The same bytes serve screen and print;
// the browser selects the medium.
// GET /executive-summary
func (h *SummaryHandler) GetPage(c *gin.Context) {
	page, err := h.service.Page(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("ETag", page.ETag)
	c.Header("Cache-Control", "no-cache")
	if match := c.GetHeader("If-None-Match"); match != "" && etagMatches(match, page.ETag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.Header("X-Summary-Sections", strconv.Itoa(page.Sections))
	c.Data(http.StatusOK, "text/html; charset=utf-8", page.HTML)
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// GetAsset serves the static assets referenced by the document
// GET <asset prefix>/*filepath
func (h *SummaryHandler) GetAsset(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	data, err := fs.ReadFile(h.assets, name)
	if err != nil {
		h.NotFound(c, "Asset not found")
		return
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}

// GetOutline returns the visual tree outline of the document on one medium
// GET /api/v1/summary/outline?mode=screen|print
func (h *SummaryHandler) GetOutline(c *gin.Context) {
	var req summary.OutlineRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if req.Mode != "" {
		c.Request = c.Request.WithContext(logger.WithRenderMode(c.Request.Context(), strings.ToLower(req.Mode)))
	}

	outline, err := h.service.OutlineFor(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, outline)
}

// ExportPDF prints the document through the headless host and returns the PDF
// GET /api/v1/summary/export.pdf
func (h *SummaryHandler) ExportPDF(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if !h.service.ExportAvailable() {
		h.HandleError(c, summary.ErrExportUnavailable)
		return
	}
	if req.Store && h.exports == nil {
		h.ServiceUnavailable(c, "PDF storage is not enabled")
		return
	}

	ctx := logger.WithRenderMode(c.Request.Context(), "print")
	c.Request = c.Request.WithContext(ctx)

	result, err := h.service.Export(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if req.Store {
		stored, err := h.exports.Store(ctx, strings.TrimSuffix(result.FileName, ".pdf"), result.PDFData)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.Header("X-Export-Name", stored.Name)
	}

	disposition := req.Disposition
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": result.FileName}))
	c.Header("X-Page-Count", strconv.Itoa(result.PageCount))
	if len(result.PageSizes) > 0 {
		first := result.PageSizes[0]
		c.Header("X-Page-Size", fmt.Sprintf("%gx%gmm", first.Width, first.Height))
	}
	c.Header("Server-Timing", fmt.Sprintf("render;dur=%d", result.Duration.Milliseconds()))

	logger.L(ctx).Info("summary exported",
		zap.String("file", result.FileName),
		zap.Int("pages", result.PageCount),
		zap.Int("bytes", len(result.PDFData)))

	c.Data(http.StatusOK, "application/pdf", result.PDFData)
}

// Print fires the server-side print trigger and returns immediately
// POST /api/v1/summary/print
func (h *SummaryHandler) Print(c *gin.Context) {
	resp, err := h.service.Print()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, resp)
}

// ListExports lists stored PDF exports
// GET /api/v1/summary/exports
func (h *SummaryHandler) ListExports(c *gin.Context) {
	if h.exports == nil {
		h.ServiceUnavailable(c, "PDF storage is not enabled")
		return
	}
	names, err := h.exports.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	h.Success(c, ExportListResponse{Exports: names, Count: len(names)})
}

// DownloadExport streams a stored PDF export
// GET /api/v1/summary/exports/:name
func (h *SummaryHandler) DownloadExport(c *gin.Context) {
	if h.exports == nil {
		h.ServiceUnavailable(c, "PDF storage is not enabled")
		return
	}
	name := c.Param("name")
	file, err := h.exports.Open(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	c.DataFromReader(http.StatusOK, -1, "application/pdf", file, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": name}),
	})
}
