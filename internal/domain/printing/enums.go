package printing

import "strings"

// PaperSize represents the paper size for printing
type PaperSize string

const (
	PaperSizeA4     PaperSize = "A4"     // 210mm x 297mm
	PaperSizeA5     PaperSize = "A5"     // 148mm x 210mm
	PaperSizeLetter PaperSize = "LETTER" // 8.5in x 11in
	PaperSizeLegal  PaperSize = "LEGAL"  // 8.5in x 14in
	PaperSizeCustom PaperSize = "CUSTOM" // explicit width/height from @page
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeA4, PaperSizeA5, PaperSizeLetter, PaperSizeLegal, PaperSizeCustom:
		return true
	}
	return false
}

// IsNamed reports whether the size has fixed, well-known dimensions
func (p PaperSize) IsNamed() bool {
	return p.IsValid() && p != PaperSizeCustom
}

// String returns the string representation of PaperSize
func (p PaperSize) String() string {
	return string(p)
}

// CSSName returns the CSS page-size keyword (e.g. "A4", "letter")
func (p PaperSize) CSSName() string {
	switch p {
	case PaperSizeLetter, PaperSizeLegal:
		return strings.ToLower(string(p))
	default:
		return string(p)
	}
}

// Dimensions returns the portrait paper dimensions in millimeters (width, height)
func (p PaperSize) Dimensions() (width, height float64) {
	switch p {
	case PaperSizeA4:
		return 210, 297
	case PaperSizeA5:
		return 148, 210
	case PaperSizeLetter:
		return 215.9, 279.4
	case PaperSizeLegal:
		return 215.9, 355.6
	default:
		return 210, 297 // Default to A4
	}
}

// ParsePaperSize resolves a CSS or config keyword ("a4", "Letter") to a PaperSize
func ParsePaperSize(s string) (PaperSize, bool) {
	p := PaperSize(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsNamed() {
		return "", false
	}
	return p, true
}

// AllPaperSizes returns all named PaperSize values
func AllPaperSizes() []PaperSize {
	return []PaperSize{PaperSizeA4, PaperSizeA5, PaperSizeLetter, PaperSizeLegal}
}

// Orientation represents the page orientation for printing
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// IsValid checks if the Orientation is a valid value
func (o Orientation) IsValid() bool {
	switch o {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// String returns the string representation of Orientation
func (o Orientation) String() string {
	return string(o)
}
