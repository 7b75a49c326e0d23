package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/blocks"
)

// TextExporter writes plain text: one line per paragraph, table rows with
// tab-separated cells and a form feed for every page break
type TextExporter struct{}

// Extension returns "txt"
func (e *TextExporter) Extension() string {
	return "txt"
}

// Export writes the blocks as plain text
func (e *TextExporter) Export(w io.Writer, blks []blocks.Block) error {
	bw := bufio.NewWriter(w)
	for _, b := range blks {
		switch b.Kind {
		case blocks.Paragraph:
			fmt.Fprintln(bw, b.Text)
		case blocks.Table:
			for _, row := range b.Rows {
				fmt.Fprintln(bw, strings.Join(row, "\t"))
			}
		case blocks.PageBreak:
			bw.WriteString("\f")
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}
