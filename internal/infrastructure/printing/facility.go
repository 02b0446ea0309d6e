package printing

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultFacilityTimeout = 60 * time.Second

// RequestSource produces the document the facility prints
type RequestSource func(ctx context.Context) (*PrintRequest, error)

// HeadlessPrintFacility is the server-side counterpart of the browser's print
// dialog: each call prints the current document through a PrintHost and saves
// the PDF into the export directory. Outcomes are logged, never returned.
type HeadlessPrintFacility struct {
	host    PrintHost
	store   *ExportStore
	source  RequestSource
	prefix  string
	timeout time.Duration
	logger  *zap.Logger
}

// FacilityOption configures a HeadlessPrintFacility
type FacilityOption func(*HeadlessPrintFacility)

// WithFacilityTimeout bounds a single print flow
func WithFacilityTimeout(d time.Duration) FacilityOption {
	return func(f *HeadlessPrintFacility) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithFacilityLogger sets the logger
func WithFacilityLogger(logger *zap.Logger) FacilityOption {
	return func(f *HeadlessPrintFacility) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithFilePrefix sets the prefix of saved file names
func WithFilePrefix(prefix string) FacilityOption {
	return func(f *HeadlessPrintFacility) {
		f.prefix = prefix
	}
}

// NewHeadlessPrintFacility creates a print facility
func NewHeadlessPrintFacility(host PrintHost, store *ExportStore, source RequestSource, opts ...FacilityOption) *HeadlessPrintFacility {
	f := &HeadlessPrintFacility{
		host:    host,
		store:   store,
		source:  source,
		prefix:  "executive-summary",
		timeout: defaultFacilityTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Print runs the document's print flow once
func (f *HeadlessPrintFacility) Print() {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	req, err := f.source(ctx)
	if err != nil {
		f.logger.Error("print: failed to prepare document", zap.Error(err))
		return
	}

	result, err := f.host.Print(ctx, req)
	if err != nil {
		f.logger.Error("print: host print failed", zap.Error(err))
		return
	}

	stored, err := f.store.Store(ctx, f.prefix, result.PDFData)
	if err != nil {
		f.logger.Error("print: failed to save PDF", zap.Error(err))
		return
	}

	f.logger.Info("print: document saved",
		zap.String("file", stored.Name),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))
}
