// Package export renders bill listings into downloadable documents.
//
// XLSX files are written with excelize and CSV files with gocsv. PDF
// documents are produced by filling an HTML template and handing it to a
// PDFRenderer; ChromedpRenderer prints through headless Chrome.
//
// Example usage:
//
//	renderer, err := export.NewChromedpRenderer(&export.ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	exporter := export.NewExporter(renderer, logger)
//	doc, err := exporter.Export(ctx, export.FormatPDF, "2024-01", bills)
package export
