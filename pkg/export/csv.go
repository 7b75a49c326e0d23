package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/blocks"
)

// CSVExporter writes a single "Content" column with one row per page
type CSVExporter struct{}

// Extension returns "csv"
func (e *CSVExporter) Extension() string {
	return "csv"
}

// Export writes one row per page holding all of the page's text
func (e *CSVExporter) Export(w io.Writer, blks []blocks.Block) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Content"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, page := range blocks.SplitPages(blks) {
		if err := cw.Write([]string{pageText(page)}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
