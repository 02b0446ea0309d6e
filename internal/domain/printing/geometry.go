package printing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/briefing/backend/internal/domain/shared"
)

// dimensionTolerance is how close (in mm) explicit dimensions must be to a
// named size to be reported as that size.
const dimensionTolerance = 0.5

// PageGeometry is the fixed physical sheet a PRINT rendering is laid out on.
// Width and Height are the oriented sheet dimensions in millimeters.
type PageGeometry struct {
	Size        PaperSize   `json:"size"`
	Orientation Orientation `json:"orientation"`
	Width       float64     `json:"width_mm"`
	Height      float64     `json:"height_mm"`
	Margins     Margins     `json:"margins"`
}

// NewPageGeometry builds the geometry of a named paper size
func NewPageGeometry(size PaperSize, orientation Orientation, margins Margins) (PageGeometry, error) {
	if !size.IsNamed() {
		return PageGeometry{}, shared.NewDomainError("INVALID_PAPER_SIZE", "Invalid paper size: "+string(size))
	}
	if orientation == "" {
		orientation = OrientationPortrait
	}
	if !orientation.IsValid() {
		return PageGeometry{}, shared.NewDomainError("INVALID_ORIENTATION", "Invalid orientation: "+string(orientation))
	}
	w, h := size.Dimensions()
	if orientation == OrientationLandscape {
		w, h = h, w
	}
	return PageGeometry{
		Size:        size,
		Orientation: orientation,
		Width:       w,
		Height:      h,
		Margins:     margins,
	}, nil
}

// CustomPageGeometry builds a geometry from explicit dimensions in millimeters.
// Dimensions matching a named size are reported as that size.
func CustomPageGeometry(width, height float64, margins Margins) PageGeometry {
	orientation := OrientationPortrait
	if width > height {
		orientation = OrientationLandscape
	}
	size := PaperSizeCustom
	for _, named := range AllPaperSizes() {
		w, h := named.Dimensions()
		if orientation == OrientationLandscape {
			w, h = h, w
		}
		if math.Abs(w-width) <= dimensionTolerance && math.Abs(h-height) <= dimensionTolerance {
			size = named
			break
		}
	}
	return PageGeometry{
		Size:        size,
		Orientation: orientation,
		Width:       width,
		Height:      height,
		Margins:     margins,
	}
}

// ReferenceGeometry returns the geometry of the reference instance: A4 portrait, 15mm margins
func ReferenceGeometry() PageGeometry {
	g, _ := NewPageGeometry(PaperSizeA4, OrientationPortrait, DefaultMargins())
	return g
}

// ContentBox returns the printable area inside the margins (width, height) in mm
func (g PageGeometry) ContentBox() (width, height float64) {
	return g.Width - float64(g.Margins.Left+g.Margins.Right),
		g.Height - float64(g.Margins.Top+g.Margins.Bottom)
}

// SizeCSS returns the value of the @page size descriptor for this geometry
func (g PageGeometry) SizeCSS() string {
	if g.Size.IsNamed() {
		if g.Orientation == OrientationLandscape {
			return g.Size.CSSName() + " landscape"
		}
		return g.Size.CSSName()
	}
	return formatMM(g.Width) + " " + formatMM(g.Height)
}

// Equals compares two geometries within the dimension tolerance
func (g PageGeometry) Equals(other PageGeometry) bool {
	return g.Size == other.Size &&
		g.Orientation == other.Orientation &&
		math.Abs(g.Width-other.Width) <= dimensionTolerance &&
		math.Abs(g.Height-other.Height) <= dimensionTolerance &&
		g.Margins.Equals(other.Margins)
}

// String returns a human readable description, e.g. "A4 210x297mm (15mm)"
func (g PageGeometry) String() string {
	return fmt.Sprintf("%s %sx%smm (%s)", g.Size, trimFloat(g.Width), trimFloat(g.Height), g.Margins.CSS())
}

func formatMM(v float64) string {
	return trimFloat(v) + "mm"
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
