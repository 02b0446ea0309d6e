package summary

import (
	"time"

	"github.com/briefing/backend/internal/domain/printing"
	"github.com/briefing/backend/internal/infrastructure/layout"
	infra "github.com/briefing/backend/internal/infrastructure/printing"
)

// =============================================================================
// Page DTOs
// =============================================================================

// Page is the rendered summary document, identical for both output media
type Page struct {
	HTML       []byte
	ETag       string
	Sections   int
	RenderedAt time.Time
}

// =============================================================================
// Outline DTOs
// =============================================================================

// OutlineRequest selects the medium an outline is computed for
type OutlineRequest struct {
	Mode string `form:"mode" binding:"omitempty,oneof=screen print SCREEN PRINT"`
}

// OutlineResponse is the visual tree of the summary on one medium
type OutlineResponse struct {
	Mode     string              `json:"mode"`
	Toolbar  bool                `json:"toolbar"`
	Sections []OutlineSectionDTO `json:"sections"`
	Page     *PageGeometryDTO    `json:"page,omitempty"`
}

// OutlineSectionDTO is one section of an outline
type OutlineSectionDTO struct {
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

// PageGeometryDTO is the fixed sheet of a print outline
type PageGeometryDTO struct {
	Size        string     `json:"size"`
	Orientation string     `json:"orientation"`
	WidthMM     float64    `json:"width_mm"`
	HeightMM    float64    `json:"height_mm"`
	Margins     MarginsDTO `json:"margins"`
}

// MarginsDTO represents page margins in millimeters
type MarginsDTO struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// =============================================================================
// Export and Print DTOs
// =============================================================================

// ExportResult is a PDF produced by the headless host
type ExportResult struct {
	PDFData   []byte
	FileName  string
	PageCount int
	PageSizes []infra.PageSize
	Duration  time.Duration
}

// PrintTriggerResponse acknowledges a fired print trigger
type PrintTriggerResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

// =============================================================================
// Conversion Functions
// =============================================================================

func toOutlineResponse(o *layout.Outline) *OutlineResponse {
	resp := &OutlineResponse{
		Mode:     o.Mode.MediaType(),
		Toolbar:  o.Toolbar,
		Sections: make([]OutlineSectionDTO, 0, len(o.Sections)),
	}
	for i, s := range o.Sections {
		resp.Sections = append(resp.Sections, OutlineSectionDTO{
			Position: i + 1,
			Kind:     s.Kind,
			Title:    s.Title,
			Text:     s.Text,
		})
	}
	if o.Page != nil {
		resp.Page = toPageGeometryDTO(*o.Page)
	}
	return resp
}

func toPageGeometryDTO(g printing.PageGeometry) *PageGeometryDTO {
	return &PageGeometryDTO{
		Size:        g.Size.String(),
		Orientation: g.Orientation.String(),
		WidthMM:     g.Width,
		HeightMM:    g.Height,
		Margins: MarginsDTO{
			Top:    g.Margins.Top,
			Right:  g.Margins.Right,
			Bottom: g.Margins.Bottom,
			Left:   g.Margins.Left,
		},
	}
}
