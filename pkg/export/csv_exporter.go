package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Row is one line of an exported summary.
type Row struct {
	Field string
	Value string
}

// Dataset is a titled field/value listing ready for rendering.
type Dataset struct {
	Title    string
	Subtitle string
	Rows     []Row
}

// CSVExporter writes a dataset as a two-column CSV document.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the rows with a field,value header line. The title and
// subtitle are omitted; CSV consumers want the bare table.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Rows) == 0 {
		return nil, fmt.Errorf("csv export requires at least one row")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"field", "value"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range data.Rows {
		if err := w.Write([]string{row.Field, row.Value}); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
