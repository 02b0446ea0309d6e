package summary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/briefing/backend/internal/application/summary"
	"github.com/briefing/backend/internal/domain/document"
	"github.com/briefing/backend/internal/domain/printing"
	"github.com/briefing/backend/internal/domain/shared"
	"github.com/briefing/backend/internal/infrastructure/content"
	"github.com/briefing/backend/internal/infrastructure/layout"
	infra "github.com/briefing/backend/internal/infrastructure/printing"
	"github.com/briefing/backend/internal/infrastructure/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type MockPrintHost struct {
	mock.Mock
}

func (m *MockPrintHost) Print(ctx context.Context, req *infra.PrintRequest) (*infra.PrintResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.PrintResult), args.Error(1)
}

func (m *MockPrintHost) Close() error {
	return m.Called().Error(0)
}

// =============================================================================
// Helpers
// =============================================================================

func newTestService(t *testing.T, opts ...summary.Option) *summary.Service {
	t.Helper()
	payload, err := content.Default()
	require.NoError(t, err)
	renderer, err := render.NewRenderer(render.NewTemplateEngine(), render.Options{})
	require.NoError(t, err)
	return summary.NewService(payload, renderer, layout.NewEngine(), opts...)
}

// =============================================================================
// Page
// =============================================================================

func TestService_Page(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	page, err := svc.Page(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, page.Sections)
	assert.NotEmpty(t, page.ETag)
	assert.Contains(t, string(page.HTML), `data-section="tldr"`)

	again, err := svc.Page(ctx)
	require.NoError(t, err)
	assert.Same(t, page, again)
}

func TestService_Page_FirstCallerCancellationNotCached(t *testing.T) {
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page, err := svc.Page(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, page.HTML)
}

// =============================================================================
// Outline
// =============================================================================

func TestService_Outline(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	screen, err := svc.Outline(ctx, document.RenderModeScreen)
	require.NoError(t, err)
	print, err := svc.Outline(ctx, document.RenderModePrint)
	require.NoError(t, err)

	assert.Equal(t, "screen", screen.Mode)
	assert.True(t, screen.Toolbar)
	assert.Nil(t, screen.Page)

	assert.Equal(t, "print", print.Mode)
	assert.False(t, print.Toolbar)
	require.NotNil(t, print.Page)
	assert.Equal(t, "A4", print.Page.Size)
	assert.Equal(t, 210.0, print.Page.WidthMM)
	assert.Equal(t, 297.0, print.Page.HeightMM)
	assert.Equal(t, summary.MarginsDTO{Top: 15, Right: 15, Bottom: 15, Left: 15}, print.Page.Margins)

	require.Len(t, screen.Sections, 12)
	assert.Equal(t, screen.Sections, print.Sections)
	assert.Equal(t, 1, screen.Sections[0].Position)
	assert.Equal(t, "footer", screen.Sections[11].Kind)
}

func TestService_OutlineFor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.OutlineFor(ctx, summary.OutlineRequest{})
	require.NoError(t, err)
	assert.Equal(t, "screen", resp.Mode)

	resp, err = svc.OutlineFor(ctx, summary.OutlineRequest{Mode: "print"})
	require.NoError(t, err)
	assert.Equal(t, "print", resp.Mode)

	_, err = svc.OutlineFor(ctx, summary.OutlineRequest{Mode: "paper"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Outline(ctx, document.RenderMode("PAPER"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

// =============================================================================
// Export
// =============================================================================

func TestService_Export_Unavailable(t *testing.T) {
	svc := newTestService(t)

	assert.False(t, svc.ExportAvailable())
	_, err := svc.Export(context.Background())
	assert.ErrorIs(t, err, summary.ErrExportUnavailable)
	assert.ErrorIs(t, err, shared.ErrUnavailable)
}

func TestService_Export(t *testing.T) {
	host := new(MockPrintHost)
	svc := newTestService(t, summary.WithExporter(host))

	host.On("Print", mock.Anything, mock.MatchedBy(func(req *infra.PrintRequest) bool {
		return req.Geometry.Equals(printing.ReferenceGeometry()) &&
			req.Title == "Executive Summary" &&
			len(req.HTML) > 0
	})).Return(&infra.PrintResult{
		PDFData:        []byte("%PDF-1.4"),
		PageCount:      3,
		PageSizes:      []infra.PageSize{{Width: 210, Height: 297}},
		RenderDuration: time.Second,
	}, nil).Once()

	result, err := svc.Export(context.Background())
	require.NoError(t, err)

	host.AssertExpectations(t)
	assert.Equal(t, []byte("%PDF-1.4"), result.PDFData)
	assert.Equal(t, 3, result.PageCount)
	assert.Regexp(t, `^executive-summary-[0-9a-f]{8}\.pdf$`, result.FileName)
}

func TestService_Export_HostFailure(t *testing.T) {
	host := new(MockPrintHost)
	svc := newTestService(t, summary.WithExporter(host))

	hostErr := infra.NewRenderError(infra.ErrCodeRenderTimeout, "printing timed out", nil)
	host.On("Print", mock.Anything, mock.Anything).Return(nil, hostErr).Once()

	_, err := svc.Export(context.Background())

	var renderErr *infra.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, infra.ErrCodeRenderTimeout, renderErr.Code)
}

// =============================================================================
// Print trigger
// =============================================================================

func TestService_Print(t *testing.T) {
	called := make(chan struct{}, 1)
	svc := newTestService(t, summary.WithPrintFacility(summary.PrintFacilityFunc(func() {
		called <- struct{}{}
	})))

	resp, err := svc.Print()
	require.NoError(t, err)
	assert.True(t, resp.Accepted)

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("print facility was not invoked")
	}
	assert.Equal(t, int64(1), svc.Trigger().Fired())
}

func TestService_Print_Unavailable(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Print()
	assert.ErrorIs(t, err, summary.ErrPrintUnavailable)
}

func TestService_PrintRequest(t *testing.T) {
	svc := newTestService(t)

	req, err := svc.PrintRequest(context.Background())
	require.NoError(t, err)
	assert.True(t, req.Geometry.Equals(printing.ReferenceGeometry()))
	assert.Equal(t, "Executive Summary", req.Title)
}
