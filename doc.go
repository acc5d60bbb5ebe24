// Package html2pdf converts HTML files to PDF using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert a file, and close when done:
//
//	conv, err := html2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	if err := conv.ConvertFile(ctx, "report.html", "report.pdf"); err != nil {
//	    log.Fatal(err)
//	}
//
// The HTML is rendered from a sibling temporary copy, so relative images and
// stylesheets resolve against the directory of the source file.
//
// # Conversion Steps
//
//  1. Read the HTML file
//  2. Declare UTF-8 when the document has no charset
//  3. Inject the base stylesheet (A4 page, 2cm margins, Unicode font stack)
//  4. Render to PDF via headless Chrome (go-rod)
//
// A document's own @page rule takes precedence over the page settings.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := html2pdf.NewConverter(
//	    html2pdf.WithTimeout(2 * time.Minute),
//	    html2pdf.WithStylesheet("/etc/html2pdf/print.css"),
//	    html2pdf.WithPage(&html2pdf.PageSettings{Size: "letter"}),
//	)
//
// # Parallel Processing
//
// Each Converter owns one browser and must not be shared between goroutines.
// For concurrent work, use ConverterPool:
//
//	pool := html2pdf.NewConverterPool(html2pdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Browser
//
// Chrome is launched lazily on the first conversion. Set ROD_BROWSER_BIN to use
// a pre-installed browser; the sandbox is disabled in CI, in containers using
// ROD_BROWSER_BIN, or when ROD_NO_SANDBOX is set.
package html2pdf
