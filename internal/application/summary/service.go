package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/briefing/backend/internal/domain/document"
	"github.com/briefing/backend/internal/domain/shared"
	"github.com/briefing/backend/internal/infrastructure/layout"
	infra "github.com/briefing/backend/internal/infrastructure/printing"
	"github.com/briefing/backend/internal/infrastructure/render"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrExportUnavailable is returned by Export when no headless host is configured
var ErrExportUnavailable = shared.NewDomainError(shared.ErrUnavailable.Code, "PDF export is not enabled")

// ErrPrintUnavailable is returned when no server-side print facility is configured
var ErrPrintUnavailable = shared.NewDomainError(shared.ErrUnavailable.Code, "Server-side printing is not enabled")

// Service serves the executive summary document.
// The payload is read-only; the page is rendered once and shared.
type Service struct {
	payload  *document.Payload
	renderer *render.Renderer
	engine   *layout.Engine
	exporter infra.PrintHost
	facility PrintFacility
	trigger  *PrintTrigger
	logger   *zap.Logger

	pageOnce sync.Once
	page     *Page
	pageErr  error
}

// Option configures a Service
type Option func(*Service)

// WithExporter attaches the headless host used by Export
func WithExporter(host infra.PrintHost) Option {
	return func(s *Service) {
		s.exporter = host
	}
}

// WithPrintFacility attaches the facility fired by the server-side print trigger
func WithPrintFacility(facility PrintFacility) Option {
	return func(s *Service) {
		s.facility = facility
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a summary Service
func NewService(payload *document.Payload, renderer *render.Renderer, engine *layout.Engine, opts ...Option) *Service {
	if engine == nil {
		engine = layout.NewEngine()
	}
	s := &Service{
		payload:  payload,
		renderer: renderer,
		engine:   engine,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.trigger = NewPrintTrigger(s.facility, s.logger)
	return s
}

// AssetPrefix returns the URL path the page loads its assets from
func (s *Service) AssetPrefix() string {
	return s.renderer.Options().AssetPrefix
}

// Payload returns the document payload
func (s *Service) Payload() *document.Payload {
	return s.payload
}

// Page returns the rendered document
func (s *Service) Page(ctx context.Context) (*Page, error) {
	s.pageOnce.Do(func() {
		// the cached page must not depend on the first caller's cancellation
		result, err := s.renderer.Render(context.WithoutCancel(ctx), s.payload)
		if err != nil {
			s.pageErr = fmt.Errorf("failed to render summary: %w", err)
			return
		}
		sum := sha256.Sum256(result.HTML)
		s.page = &Page{
			HTML:       result.HTML,
			ETag:       `"` + hex.EncodeToString(sum[:8]) + `"`,
			Sections:   result.Sections,
			RenderedAt: time.Now(),
		}
		s.logger.Info("summary rendered",
			zap.Int("sections", result.Sections),
			zap.Int("bytes", len(result.HTML)),
			zap.Duration("duration", result.RenderDuration))
	})
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	return s.page, nil
}

// Outline evaluates the page for a medium and returns its visual tree outline
func (s *Service) Outline(ctx context.Context, mode document.RenderMode) (*OutlineResponse, error) {
	if !mode.IsValid() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Invalid render mode: "+string(mode))
	}
	page, err := s.Page(ctx)
	if err != nil {
		return nil, err
	}
	tree, err := s.engine.Layout(page.HTML, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out summary: %w", err)
	}
	return toOutlineResponse(tree.Outline()), nil
}

// OutlineFor parses the request mode, defaulting to SCREEN
func (s *Service) OutlineFor(ctx context.Context, req OutlineRequest) (*OutlineResponse, error) {
	mode := document.RenderModeScreen
	if req.Mode != "" {
		parsed, ok := document.ParseRenderMode(req.Mode)
		if !ok {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Invalid render mode: "+req.Mode)
		}
		mode = parsed
	}
	return s.Outline(ctx, mode)
}

// PrintRequest builds the host print request for the page
func (s *Service) PrintRequest(ctx context.Context) (*infra.PrintRequest, error) {
	page, err := s.Page(ctx)
	if err != nil {
		return nil, err
	}
	return &infra.PrintRequest{
		HTML:     page.HTML,
		Geometry: s.renderer.Options().Geometry,
		Title:    s.payload.Title(),
	}, nil
}

// ExportAvailable reports whether a headless host is configured
func (s *Service) ExportAvailable() bool {
	return s.exporter != nil
}

// Export prints the page through the headless host and returns the PDF
func (s *Service) Export(ctx context.Context) (*ExportResult, error) {
	if s.exporter == nil {
		return nil, ErrExportUnavailable
	}
	req, err := s.PrintRequest(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.exporter.Print(ctx, req)
	if err != nil {
		s.logger.Error("summary export failed", zap.Error(err))
		return nil, fmt.Errorf("failed to export summary: %w", err)
	}

	return &ExportResult{
		PDFData:   result.PDFData,
		FileName:  exportFileName(s.payload.Title()),
		PageCount: result.PageCount,
		PageSizes: result.PageSizes,
		Duration:  result.RenderDuration,
	}, nil
}

// PrintAvailable reports whether a server-side print facility is configured
func (s *Service) PrintAvailable() bool {
	return s.trigger.Available()
}

// Trigger returns the server-side print trigger
func (s *Service) Trigger() *PrintTrigger {
	return s.trigger
}

// Print fires the server-side print trigger
func (s *Service) Print() (*PrintTriggerResponse, error) {
	if !s.trigger.Fire() {
		return nil, ErrPrintUnavailable
	}
	return &PrintTriggerResponse{
		Accepted: true,
		Message:  "Print requested",
	}, nil
}

func exportFileName(title string) string {
	slug := strings.ToLower(strings.Join(strings.FieldsFunc(title, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}), "-"))
	if slug == "" {
		slug = "summary"
	}
	return slug + "-" + uuid.NewString()[:8] + ".pdf"
}
