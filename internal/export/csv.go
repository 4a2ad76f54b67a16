package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"lista/internal/core"
)

// WriteCSV writes the snapshot as a CSV document: header, item rows, then
// the summary rows padded to the table width.
func WriteCSV(w io.Writer, snap core.Snapshot) error {
	doc := BuildDocument(snap)
	cw := csv.NewWriter(w)

	if err := cw.Write(doc.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range doc.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	width := len(doc.Header)
	for _, row := range doc.Summary {
		padded := make([]string, width)
		// label in the first cell, amount in the last
		padded[0] = row[0]
		padded[width-1] = row[1]
		if err := cw.Write(padded); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
