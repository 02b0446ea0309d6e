package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	defaultScale         = 1.0
	printMedia           = "print"
)

// ChromedpConfig contains configuration for the headless Chrome host
type ChromedpConfig struct {
	// DefaultTimeout for print operations
	DefaultTimeout time.Duration
	// RemoteURL is the URL of a remote Chrome/Chromium instance (optional)
	// If empty, chromedp will launch a new browser instance
	RemoteURL string
	// ExecPath overrides the browser binary chromedp launches
	ExecPath string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Scale for rendering (default: 1.0)
	Scale float64
	// Logger for debug output
	Logger *zap.Logger
}

// ChromeHost runs a document's print flow in headless Chrome: it loads the
// document, switches the emulated media to print and saves the result as PDF.
// Page size, margins and color adjustment come from the document's stylesheet.
type ChromeHost struct {
	config      *ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromeHost creates a chromedp-based print host
func NewChromeHost(config *ChromedpConfig) *ChromeHost {
	if config == nil {
		config = &ChromedpConfig{}
	}
	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultChromeTimeout
	}
	if config.Scale == 0 {
		config.Scale = defaultScale
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	host := &ChromeHost{
		config: config,
		logger: logger,
	}
	host.initAllocator()
	return host
}

func (h *ChromeHost) initAllocator() {
	if h.config.RemoteURL != "" {
		h.allocCtx, h.allocCancel = chromedp.NewRemoteAllocator(context.Background(), h.config.RemoteURL)
		return
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if h.config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if h.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(h.config.ExecPath))
	}
	h.allocCtx, h.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Print loads the document and exports it through Chrome's print pipeline
func (h *ChromeHost) Print(ctx context.Context, req *PrintRequest) (*PrintResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "print request is nil", nil)
	}
	if len(req.HTML) == 0 {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	if !req.Geometry.Size.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(req.Geometry.Size), nil)
	}

	startTime := time.Now()

	timeout := req.Timeout
	if timeout == 0 {
		timeout = h.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(h.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			h.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	// Stop the browser tab when the caller's deadline passes
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	params := h.buildPrintParams(req)
	document := string(req.HTML)

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, document).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetEmulatedMedia().WithMedia(printMedia).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPreferCSSPageSize(true).
				WithPrintBackground(true).
				WithPaperWidth(params.paperWidth).
				WithPaperHeight(params.paperHeight).
				WithMarginTop(params.marginTop).
				WithMarginRight(params.marginRight).
				WithMarginBottom(params.marginBottom).
				WithMarginLeft(params.marginLeft).
				WithScale(params.scale).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("printing timed out after %v", timeout), err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewRenderError(ErrCodeRenderTimeout, "printing was cancelled", err)
		}

		h.logger.Error("chromedp print failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}

	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	info, err := Inspect(pdfData)
	if err != nil {
		return nil, err
	}

	renderDuration := time.Since(startTime)

	h.logger.Info("document printed",
		zap.String("title", req.Title),
		zap.Int("bytes", len(pdfData)),
		zap.Int("pages", info.PageCount),
		zap.Duration("duration", renderDuration))

	return &PrintResult{
		PDFData:        pdfData,
		PageCount:      info.PageCount,
		PageSizes:      info.PageSizes,
		RenderDuration: renderDuration,
	}, nil
}

// printParams holds the fallback sheet used when the document declares no @page size
type printParams struct {
	paperWidth   float64
	paperHeight  float64
	marginTop    float64
	marginRight  float64
	marginBottom float64
	marginLeft   float64
	scale        float64
}

// buildPrintParams converts the request geometry to Chrome's inch-based parameters
func (h *ChromeHost) buildPrintParams(req *PrintRequest) *printParams {
	g := req.Geometry
	return &printParams{
		paperWidth:   mmToInches(g.Width),
		paperHeight:  mmToInches(g.Height),
		marginTop:    mmToInches(float64(g.Margins.Top)),
		marginRight:  mmToInches(float64(g.Margins.Right)),
		marginBottom: mmToInches(float64(g.Margins.Bottom)),
		marginLeft:   mmToInches(float64(g.Margins.Left)),
		scale:        h.config.Scale,
	}
}

// Close releases the browser allocator
func (h *ChromeHost) Close() error {
	if h.allocCancel != nil {
		h.allocCancel()
	}
	return nil
}

// mmToInches converts millimeters to inches
func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// pointsToMM converts PDF points to millimeters
func pointsToMM(pt float64) float64 {
	return pt * 25.4 / 72
}

var _ PrintHost = (*ChromeHost)(nil)
