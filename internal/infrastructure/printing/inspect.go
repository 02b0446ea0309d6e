package printing

import (
	"bytes"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFInfo describes an exported PDF
type PDFInfo struct {
	PageCount int
	PageSizes []PageSize
}

// Inspect reads a PDF and reports its page count and page dimensions
func Inspect(data []byte) (*PDFInfo, error) {
	if len(data) == 0 {
		return nil, NewRenderError(ErrCodeInvalidPDF, "PDF data is empty", nil)
	}

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidPDF, "failed to read PDF", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidPDF, "failed to read page dimensions", err)
	}

	info := &PDFInfo{PageCount: ctx.PageCount}
	for _, d := range dims {
		info.PageSizes = append(info.PageSizes, PageSize{
			Width:  roundTenth(pointsToMM(d.Width)),
			Height: roundTenth(pointsToMM(d.Height)),
		})
	}
	return info, nil
}

// UniformPageSize reports whether every page has the same dimensions
func (i *PDFInfo) UniformPageSize() bool {
	for _, s := range i.PageSizes {
		if s != i.PageSizes[0] {
			return false
		}
	}
	return true
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
