// Package printing provides the host print/export facility of the executive
// summary: headless Chrome driven through chromedp, PDF inspection with
// pdfcpu and the directory exported PDFs are saved to.
//
// Example usage:
//
//	host := NewChromeHost(&ChromedpConfig{NoSandbox: true})
//	defer host.Close()
//
//	result, err := host.Print(ctx, &PrintRequest{
//	    HTML:     page,
//	    Geometry: printing.ReferenceGeometry(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Printed %d pages\n", result.PageCount)
package printing
