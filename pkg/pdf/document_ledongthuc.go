package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	lpdf "github.com/ledongthuc/pdf"
)

// LedongthucDocument implements the Document interface using ledongthuc/pdf library
type LedongthucDocument struct {
	baseDocument
	reader *lpdf.Reader
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library.
// This provides the most accurate text extraction with proper coordinates
func OpenWithLedongthuc(filepath string, opts ...OpenOption) (*LedongthucDocument, error) {
	f, size, err := openFile(filepath)
	if err != nil {
		return nil, err
	}
	doc, err := newLedongthucDocument(f, size, newOpenConfig(opts))
	if err != nil {
		f.Close()
		return nil, err
	}
	doc.file = f
	return doc, nil
}

// OpenWithLedongthucBytes opens an in-memory PDF using the ledongthuc/pdf library
func OpenWithLedongthucBytes(data []byte, opts ...OpenOption) (*LedongthucDocument, error) {
	return newLedongthucDocument(bytes.NewReader(data), int64(len(data)), newOpenConfig(opts))
}

func newLedongthucDocument(ra io.ReaderAt, size int64, config *openConfig) (doc *LedongthucDocument, err error) {
	normalize, err := normalizer(config.UnicodeNorm)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("failed to open PDF with ledongthuc: %v", r)
		}
	}()

	var r *lpdf.Reader
	if config.Password != "" {
		r, err = lpdf.NewReaderEncrypted(ra, size, passwordOnce(config.Password))
	} else {
		r, err = lpdf.NewReader(ra, size)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	doc = &LedongthucDocument{reader: r}
	doc.pageCount = r.NumPage()
	doc.normalize = normalize
	return doc, nil
}

// PageLayout decodes the page with the given 1-based number
func (d *LedongthucDocument) PageLayout(number int) (layout *PageLayout, err error) {
	if err := d.checkPage(number); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	defer recoverPage(number, &err)

	page := d.reader.Page(number)
	if page.V.IsNull() {
		return nil, &PageExtractionError{Page: number, Err: errors.New("missing page object")}
	}

	width, height := ledongthucMediaBox(page.V)

	content := page.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Glyph{
			S:        t.S,
			Font:     t.Font,
			FontSize: t.FontSize,
			X:        t.X,
			Y:        t.Y,
			W:        t.W,
		})
	}

	return d.buildLayout(number, width, height, glyphs), nil
}

// ledongthucMediaBox reads the MediaBox, following the Parent chain for inherited boxes
func ledongthucMediaBox(v lpdf.Value) (float64, float64) {
	for depth := 0; !v.IsNull() && depth < 32; depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == lpdf.Array && box.Len() == 4 {
			// MediaBox is [x0, y0, x1, y1]
			width := box.Index(2).Float64() - box.Index(0).Float64()
			height := box.Index(3).Float64() - box.Index(1).Float64()
			if width > 0 && height > 0 {
				return width, height
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}
