package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	gopdf "github.com/dslipak/pdf"
)

// DsliPakDocument implements the Document interface using dslipak/pdf library
type DsliPakDocument struct {
	baseDocument
	reader *gopdf.Reader
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string, opts ...OpenOption) (*DsliPakDocument, error) {
	f, size, err := openFile(filepath)
	if err != nil {
		return nil, err
	}
	doc, err := newDsliPakDocument(f, size, newOpenConfig(opts))
	if err != nil {
		f.Close()
		return nil, err
	}
	doc.file = f
	return doc, nil
}

// OpenWithDslipakBytes opens an in-memory PDF using the dslipak/pdf library
func OpenWithDslipakBytes(data []byte, opts ...OpenOption) (*DsliPakDocument, error) {
	return newDsliPakDocument(bytes.NewReader(data), int64(len(data)), newOpenConfig(opts))
}

func newDsliPakDocument(ra io.ReaderAt, size int64, config *openConfig) (doc *DsliPakDocument, err error) {
	normalize, err := normalizer(config.UnicodeNorm)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("failed to open PDF with dslipak: %v", r)
		}
	}()

	var r *gopdf.Reader
	if config.Password != "" {
		r, err = gopdf.NewReaderEncrypted(ra, size, passwordOnce(config.Password))
	} else {
		r, err = gopdf.NewReader(ra, size)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	doc = &DsliPakDocument{reader: r}
	doc.pageCount = r.NumPage()
	doc.normalize = normalize
	return doc, nil
}

// PageLayout decodes the page with the given 1-based number
func (d *DsliPakDocument) PageLayout(number int) (layout *PageLayout, err error) {
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

	width, height := dslipakMediaBox(page.V)

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

// dslipakMediaBox reads the MediaBox, following the Parent chain for inherited boxes
func dslipakMediaBox(v gopdf.Value) (float64, float64) {
	for depth := 0; !v.IsNull() && depth < 32; depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == gopdf.Array && box.Len() == 4 {
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
