// Package pdf2docx rebuilds paragraphs and column tables from the positioned
// text of a PDF and exports them as an editable document
package pdf2docx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/blocks"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/export"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/layout"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

// Re-export types from the pdf, blocks and export packages for the public API
type (
	Document     = pdf.Document
	PageLayout   = pdf.PageLayout
	TextFragment = pdf.TextFragment
	Metadata     = pdf.Metadata
	Block        = blocks.Block
	Exporter     = export.Exporter
)

// ErrNoPages is returned when a document has no pages at all
var ErrNoPages = errors.New("document has no pages")

// ExportError reports that the assembled blocks could not be serialized
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Option is a function that modifies a Converter
type Option func(*converterConfig)

type converterConfig struct {
	openOpts   []pdf.OpenOption
	blockOpts  []blocks.Option
	layoutOpts []layout.Option
	logger     logrus.FieldLogger
}

// WithBackend selects the PDF decoding backend ("auto", "ledongthuc", "dslipak")
func WithBackend(name string) Option {
	return func(c *converterConfig) {
		c.openOpts = append(c.openOpts, pdf.WithBackend(name))
	}
}

// WithPassword sets the password for encrypted documents
func WithPassword(password string) Option {
	return func(c *converterConfig) {
		c.openOpts = append(c.openOpts, pdf.WithPassword(password))
	}
}

// WithUnicodeNorm normalizes extracted text (NFC, NFD, NFKC, NFKD)
func WithUnicodeNorm(form string) Option {
	return func(c *converterConfig) {
		c.openOpts = append(c.openOpts, pdf.WithUnicodeNorm(form))
	}
}

// WithWorkers sets how many pages are processed concurrently
func WithWorkers(n int) Option {
	return func(c *converterConfig) {
		c.blockOpts = append(c.blockOpts, blocks.WithWorkers(n))
	}
}

// WithLineTolerance sets the vertical tolerance for grouping fragments into lines
func WithLineTolerance(tolerance float64) Option {
	return func(c *converterConfig) {
		c.layoutOpts = append(c.layoutOpts, layout.WithLineTolerance(tolerance))
	}
}

// WithLayoutOptions passes options straight to layout analysis
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(c *converterConfig) {
		c.layoutOpts = append(c.layoutOpts, opts...)
	}
}

// WithLogger sets the logger for the whole conversion
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *converterConfig) {
		c.logger = logger
	}
}

// Converter turns PDFs into exported documents. It holds no per-document state
// and may be shared between goroutines.
type Converter struct {
	openOpts  []pdf.OpenOption
	assembler *blocks.Assembler
	logger    logrus.FieldLogger
}

// NewConverter configures a Converter. This is the single setup step a host
// application performs before converting documents.
func NewConverter(opts ...Option) *Converter {
	config := &converterConfig{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(config)
	}

	blockOpts := append([]blocks.Option{
		blocks.WithLogger(config.logger),
		blocks.WithLayoutOptions(config.layoutOpts...),
	}, config.blockOpts...)

	return &Converter{
		openOpts:  append([]pdf.OpenOption{pdf.WithLogger(config.logger)}, config.openOpts...),
		assembler: blocks.NewAssembler(blockOpts...),
		logger:    config.logger,
	}
}

// Open opens a PDF file with the converter's decoding options
func (c *Converter) Open(filepath string) (Document, error) {
	return pdf.Open(filepath, c.openOpts...)
}

// Blocks decodes a document and reconstructs its block sequence
func (c *Converter) Blocks(ctx context.Context, doc Document) ([]Block, error) {
	if doc.PageCount() == 0 {
		return nil, ErrNoPages
	}
	return c.assembler.AssembleDocument(ctx, doc)
}

// ConvertDocument reconstructs doc and writes it to w in the given format.
// Nothing is written to w unless the export succeeds.
func (c *Converter) ConvertDocument(ctx context.Context, doc Document, w io.Writer, format string) error {
	exporter, err := export.ForFormat(format, doc.GetMetadata())
	if err != nil {
		return err
	}

	blks, err := c.Blocks(ctx, doc)
	if err != nil {
		return err
	}

	logger := c.logger.WithFields(logrus.Fields{"format": exporter.Extension(), "blocks": len(blks)})

	data, err := export.Bytes(exporter, blks)
	if err != nil {
		logger.WithError(err).Error("Export failed")
		return &ExportError{Format: exporter.Extension(), Err: err}
	}
	if _, err := w.Write(data); err != nil {
		return &ExportError{Format: exporter.Extension(), Err: err}
	}

	logger.Info("Converted document")
	return nil
}

// Convert opens the PDF at filepath and writes it to w in the given format
func (c *Converter) Convert(ctx context.Context, filepath string, w io.Writer, format string) error {
	doc, err := c.Open(filepath)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	return c.ConvertDocument(ctx, doc, w, format)
}

// ConvertBytes converts an in-memory PDF, such as an upload
func (c *Converter) ConvertBytes(ctx context.Context, data []byte, format string) ([]byte, error) {
	doc, err := pdf.OpenBytes(data, c.openOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var buf bytes.Buffer
	if err := c.ConvertDocument(ctx, doc, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertFile converts inPath and writes the result to outPath. The output file
// is removed if the conversion fails.
func (c *Converter) ConvertFile(ctx context.Context, inPath, outPath, format string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := c.Convert(ctx, inPath, out, format); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// Open opens a PDF file with default options and returns a Document
func Open(filepath string) (Document, error) {
	return pdf.Open(filepath)
}
