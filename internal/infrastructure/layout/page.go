package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/briefing/backend/internal/domain/printing"
)

const (
	mmPerInch = 25.4
	pxPerMM   = 96 / mmPerInch
)

// defaultPageMargin is the margin a print engine uses when no @page rule sets one
const defaultPageMargin = 10

// resolvePage computes the sheet declared by the @page declarations.
// Later declarations override earlier ones. Without any declaration the
// engine's default sheet (A4, 10mm margins) applies.
func resolvePage(decls []Declaration) (printing.PageGeometry, error) {
	size := printing.PaperSizeA4
	orientation := printing.OrientationPortrait
	var width, height float64
	custom := false
	margins := [4]float64{defaultPageMargin, defaultPageMargin, defaultPageMargin, defaultPageMargin}

	for _, d := range decls {
		switch d.Property {
		case "size":
			s, o, w, h, isCustom, err := parsePageSize(d.Value)
			if err != nil {
				return printing.PageGeometry{}, err
			}
			size, orientation, width, height, custom = s, o, w, h, isCustom
		case "margin":
			m, err := parseMarginShorthand(d.Value)
			if err != nil {
				return printing.PageGeometry{}, err
			}
			margins = m
		case "margin-top", "margin-right", "margin-bottom", "margin-left":
			v, ok := parseLength(d.Value)
			if !ok {
				return printing.PageGeometry{}, fmt.Errorf("invalid %s %q", d.Property, d.Value)
			}
			margins[sideIndex(d.Property)] = v
		}
	}

	m, err := printing.NewMargins(roundMM(margins[0]), roundMM(margins[1]), roundMM(margins[2]), roundMM(margins[3]))
	if err != nil {
		return printing.PageGeometry{}, fmt.Errorf("invalid page margins: %w", err)
	}

	if custom {
		return printing.CustomPageGeometry(width, height, m), nil
	}
	return printing.NewPageGeometry(size, orientation, m)
}

// parsePageSize parses the @page size descriptor:
// auto, a paper keyword, an orientation, both, or one or two lengths.
func parsePageSize(value string) (printing.PaperSize, printing.Orientation, float64, float64, bool, error) {
	size := printing.PaperSizeA4
	orientation := printing.OrientationPortrait
	var lengths []float64

	for _, token := range strings.Fields(value) {
		switch lower := strings.ToLower(token); lower {
		case "auto":
		case "portrait":
			orientation = printing.OrientationPortrait
		case "landscape":
			orientation = printing.OrientationLandscape
		default:
			if named, ok := printing.ParsePaperSize(lower); ok {
				size = named
				continue
			}
			mm, ok := parseLength(lower)
			if !ok || mm <= 0 {
				return "", "", 0, 0, false, fmt.Errorf("invalid page size %q", value)
			}
			lengths = append(lengths, mm)
		}
	}

	switch len(lengths) {
	case 0:
		return size, orientation, 0, 0, false, nil
	case 1:
		return "", "", lengths[0], lengths[0], true, nil
	case 2:
		return "", "", lengths[0], lengths[1], true, nil
	default:
		return "", "", 0, 0, false, fmt.Errorf("invalid page size %q", value)
	}
}

// parseMarginShorthand expands a 1-4 value margin into top, right, bottom, left
func parseMarginShorthand(value string) ([4]float64, error) {
	var values []float64
	for _, token := range strings.Fields(value) {
		v, ok := parseLength(token)
		if !ok {
			return [4]float64{}, fmt.Errorf("invalid margin %q", value)
		}
		values = append(values, v)
	}

	switch len(values) {
	case 1:
		return [4]float64{values[0], values[0], values[0], values[0]}, nil
	case 2:
		return [4]float64{values[0], values[1], values[0], values[1]}, nil
	case 3:
		return [4]float64{values[0], values[1], values[2], values[1]}, nil
	case 4:
		return [4]float64{values[0], values[1], values[2], values[3]}, nil
	default:
		return [4]float64{}, fmt.Errorf("invalid margin %q", value)
	}
}

func sideIndex(property string) int {
	switch property {
	case "margin-top":
		return 0
	case "margin-right":
		return 1
	case "margin-bottom":
		return 2
	default:
		return 3
	}
}

// parseLength converts a CSS length to millimeters
func parseLength(value string) (float64, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "0" {
		return 0, true
	}

	units := []struct {
		suffix string
		mm     float64
	}{
		{"mm", 1},
		{"cm", 10},
		{"in", mmPerInch},
		{"pt", mmPerInch / 72},
		{"pc", mmPerInch / 6},
		{"px", 1 / pxPerMM},
		{"q", 0.25},
	}
	for _, u := range units {
		if num, found := strings.CutSuffix(value, u.suffix); found {
			f, ok := parseFloat(num)
			if !ok {
				return 0, false
			}
			return f * u.mm, true
		}
	}
	return 0, false
}

func roundMM(v float64) int {
	return int(math.Round(v))
}
