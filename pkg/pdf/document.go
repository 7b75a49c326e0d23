package pdf

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// US Letter, used when a page carries no usable MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// baseDocument holds the state shared by the decoding backends.
//
// The decoders are not documented as safe for concurrent use, so page decoding
// is serialized with mu.
type baseDocument struct {
	mu        sync.Mutex
	file      io.Closer
	pageCount int
	metadata  Metadata
	sizes     []Size
	normalize func(string) string
}

// GetMetadata returns the PDF metadata
func (d *baseDocument) GetMetadata() Metadata {
	return d.metadata
}

// PageCount returns the total number of pages
func (d *baseDocument) PageCount() int {
	return d.pageCount
}

// Close releases resources associated with the document
func (d *baseDocument) Close() error {
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// applyInfo overlays page sizes and metadata reported by pdfcpu
func (d *baseDocument) applyInfo(info *Info) {
	if info == nil {
		return
	}
	d.metadata = info.Metadata
	if len(info.PageSizes) == d.pageCount {
		d.sizes = info.PageSizes
	}
}

// checkPage validates a 1-based page number
func (d *baseDocument) checkPage(number int) error {
	if number < 1 || number > d.pageCount {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, number, d.pageCount)
	}
	return nil
}

// buildLayout turns decoded glyphs into a PageLayout
func (d *baseDocument) buildLayout(number int, width, height float64, glyphs []Glyph) *PageLayout {
	if number-1 < len(d.sizes) {
		if s := d.sizes[number-1]; s.Width > 0 && s.Height > 0 {
			width, height = s.Width, s.Height
		}
	}
	return &PageLayout{
		Number:    number,
		Width:     width,
		Height:    height,
		Fragments: normalizeFragments(MergeGlyphs(glyphs), d.normalize),
	}
}

// recoverPage converts a decoder panic into a PageExtractionError
func recoverPage(number int, err *error) {
	if r := recover(); r != nil {
		*err = &PageExtractionError{Page: number, Err: fmt.Errorf("decoder panic: %v", r)}
	}
}

// passwordOnce returns the password on the first call and "" afterwards, which
// is how the decoders learn that there is nothing else to try
func passwordOnce(password string) func() string {
	used := false
	return func() string {
		if used {
			return ""
		}
		used = true
		return password
	}
}

// openFile opens a file and reports its size
func openFile(filepath string) (*os.File, int64, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat file: %w", err)
	}
	return f, st.Size(), nil
}
