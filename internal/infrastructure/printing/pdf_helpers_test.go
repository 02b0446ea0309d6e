package printing

import (
	"bytes"
	"fmt"
)

// buildPDF returns a minimal valid PDF with one empty page per size (in points)
func buildPDF(sizes ...[2]float64) []byte {
	var buf bytes.Buffer
	var offsets []int

	write := func(obj string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := ""
	for i := range sizes {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}

	write("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	write(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", kids, len(sizes)))
	for i, s := range sizes {
		write(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Resources << >> >>\nendobj\n", i+3, s[0], s[1]))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

// A4 in points
var a4Points = [2]float64{595.28, 841.89}
