package render

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/briefing/backend/internal/domain/document"
	"github.com/briefing/backend/internal/domain/printing"
	infra "github.com/briefing/backend/internal/infrastructure/printing"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets/*
var assetFS embed.FS

const (
	pageTemplate       = "summary"
	defaultBackLink    = "/presentation"
	defaultAssetPrefix = "/executive-summary/assets"
)

// Options configures a Renderer. Options are fixed for the renderer's lifetime.
type Options struct {
	// BackLink is the target of the "Back to presentation" link
	BackLink string
	// Geometry is the sheet declared by the stylesheet's @page rule
	Geometry printing.PageGeometry
	// AutoPrint opens the print dialog once the page has loaded
	AutoPrint bool
	// AssetPrefix is the URL path the embedded assets are served under
	AssetPrefix string
}

// DefaultOptions returns the options of the reference document
func DefaultOptions() Options {
	return Options{
		BackLink:    defaultBackLink,
		Geometry:    printing.ReferenceGeometry(),
		AssetPrefix: defaultAssetPrefix,
	}
}

// RenderResult contains the rendered document
type RenderResult struct {
	// HTML is the complete document, identical for every output medium
	HTML []byte
	// Sections is the number of sections rendered
	Sections int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// Renderer turns a payload into one HTML document carrying both the screen
// and the print presentation as media-conditional style rules.
type Renderer struct {
	engine *TemplateEngine
	tmpl   *template.Template
	opts   Options
}

// NewRenderer parses the embedded templates and returns a Renderer
func NewRenderer(engine *TemplateEngine, opts Options) (*Renderer, error) {
	if engine == nil {
		engine = NewTemplateEngine()
	}

	defaults := DefaultOptions()
	if opts.BackLink == "" {
		opts.BackLink = defaults.BackLink
	}
	opts.AssetPrefix = strings.TrimRight(opts.AssetPrefix, "/")
	if opts.AssetPrefix == "" {
		opts.AssetPrefix = defaults.AssetPrefix
	}
	if opts.Geometry.Size == "" {
		opts.Geometry = defaults.Geometry
	}
	if !opts.Geometry.Size.IsValid() {
		return nil, infra.NewRenderError(infra.ErrCodeInvalidPaperSize, "invalid paper size: "+string(opts.Geometry.Size), nil)
	}

	tmpl := template.New(pageTemplate).Funcs(engine.GetFuncMap())
	tmpl, err := tmpl.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, infra.NewRenderError(infra.ErrCodeInvalidHTML, "failed to parse templates", err)
	}

	return &Renderer{
		engine: engine,
		tmpl:   tmpl,
		opts:   opts,
	}, nil
}

// Options returns the renderer's options
func (r *Renderer) Options() Options {
	return r.opts
}

// Render produces the document for the payload.
// Every section appears exactly once, in payload order.
func (r *Renderer) Render(ctx context.Context, payload *document.Payload) (*RenderResult, error) {
	if payload == nil {
		return nil, infra.NewRenderError(infra.ErrCodeInvalidHTML, "payload is nil", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, infra.NewRenderError(infra.ErrCodeRenderTimeout, "render cancelled", err)
	}

	startTime := time.Now()

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, pageTemplate, newPageView(payload, r.opts)); err != nil {
		return nil, infra.NewRenderError(infra.ErrCodeRenderFailed, "failed to execute template", err)
	}

	return &RenderResult{
		HTML:           buf.Bytes(),
		Sections:       payload.Len(),
		RenderDuration: time.Since(startTime),
	}, nil
}

// Assets returns the static assets referenced by the page (print script)
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
