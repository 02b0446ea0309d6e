package printing

import (
	"context"
	"time"

	"github.com/briefing/backend/internal/domain/printing"
)

// PrintRequest contains the parameters for printing an HTML document
type PrintRequest struct {
	// HTML is the complete document to print
	HTML []byte
	// Geometry is the sheet the document's @page rules are expected to declare.
	// The host prefers the document's CSS page size; Geometry is the fallback.
	Geometry printing.PageGeometry
	// Title for the PDF document metadata
	Title string
	// Timeout overrides the default print timeout
	Timeout time.Duration
}

// PrintResult contains the output of the host's print flow
type PrintResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// PageSizes are the sheet dimensions of each page in millimeters
	PageSizes []PageSize
	// RenderDuration is how long printing took
	RenderDuration time.Duration
}

// PageSize is the measured size of one printed page in millimeters
type PageSize struct {
	Width  float64 `json:"width_mm"`
	Height float64 `json:"height_mm"`
}

// PrintHost is a host environment able to run a document's print/export flow
type PrintHost interface {
	// Print runs the print flow for the document and returns the exported PDF
	Print(ctx context.Context, req *PrintRequest) (*PrintResult, error)
	// Close releases any resources held by the host
	Close() error
}

// RenderError represents an error during rendering or printing
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeInvalidPDF       = "INVALID_PDF"
	ErrCodeStorageFailed    = "STORAGE_FAILED"
	ErrCodeExportNotFound   = "EXPORT_NOT_FOUND"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
