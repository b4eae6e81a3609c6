package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter lays a dataset out as a one-page A4 summary sheet.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render draws the title block followed by a two-column field/value table.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Rows) == 0 {
		return nil, fmt.Errorf("pdf export requires at least one row")
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 20, 15)
	doc.AddPage()

	if data.Title != "" {
		doc.SetFont("Arial", "B", 16)
		doc.CellFormat(0, 10, data.Title, "", 1, "C", false, 0, "")
	}
	if data.Subtitle != "" {
		doc.SetFont("Arial", "", 11)
		doc.CellFormat(0, 8, data.Subtitle, "", 1, "C", false, 0, "")
	}
	doc.Ln(6)

	const fieldWidth, valueWidth = 60.0, 120.0
	for _, row := range data.Rows {
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(fieldWidth, 8, row.Field, "1", 0, "L", false, 0, "")
		doc.SetFont("Arial", "", 10)
		doc.CellFormat(valueWidth, 8, row.Value, "1", 1, "L", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := doc.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
