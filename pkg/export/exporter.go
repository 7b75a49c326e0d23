// Package export writes an assembled block sequence in a concrete document format.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/blocks"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

// Exporter serializes blocks to w
type Exporter interface {
	// Export writes the blocks in order
	Export(w io.Writer, blocks []blocks.Block) error

	// Extension returns the file extension of the format, without the dot
	Extension() string
}

// ForFormat returns the exporter for a format name: "docx", "csv" or "txt"
func ForFormat(format string, meta pdf.Metadata) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "docx", "word":
		return &DocxExporter{Metadata: meta}, nil
	case "csv", "excel":
		return &CSVExporter{}, nil
	case "txt", "text":
		return &TextExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Bytes runs e and returns what it wrote
func Bytes(e Exporter, blks []blocks.Block) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Export(&buf, blks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pageText joins every paragraph and table cell of a page with single spaces
func pageText(page []blocks.Block) string {
	var parts []string
	for _, b := range page {
		switch b.Kind {
		case blocks.Paragraph:
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		case blocks.Table:
			for _, row := range b.Rows {
				for _, cell := range row {
					if cell != "" {
						parts = append(parts, cell)
					}
				}
			}
		}
	}
	return strings.Join(parts, " ")
}
