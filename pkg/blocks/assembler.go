package blocks

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/layout"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

// Assembler turns decoded pages into a block sequence
type Assembler struct {
	workers    int
	layoutOpts []layout.Option
	logger     logrus.FieldLogger
}

// Option is a function that modifies an Assembler
type Option func(*Assembler)

// WithWorkers sets how many pages are processed at once. 1 processes pages
// strictly in order.
func WithWorkers(n int) Option {
	return func(a *Assembler) {
		a.workers = n
	}
}

// WithLayoutOptions sets the options passed to column detection and line grouping
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(a *Assembler) {
		a.layoutOpts = append(a.layoutOpts, opts...)
	}
}

// WithLogger sets the logger used to report skipped pages
func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// NewAssembler creates an Assembler; by default it uses one worker per CPU
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		workers: runtime.GOMAXPROCS(0),
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = 1
	}
	return a
}

// PageBlocks reconstructs the blocks of a single page.
//
// A single-column page gives one paragraph per line. A multi-column page gives
// one table whose row i holds line i of every column, with an empty cell where a
// column has fewer lines. An empty page gives nothing.
func (a *Assembler) PageBlocks(page *pdf.PageLayout) []Block {
	if page.IsEmpty() {
		return nil
	}

	columns := layout.DetectColumns(page, a.layoutOpts...)
	if columns <= 1 {
		lines := layout.GroupLines(page.Fragments, a.layoutOpts...)
		out := make([]Block, 0, len(lines))
		for _, line := range lines {
			out = append(out, NewParagraph(line.Text()))
		}
		return out
	}

	parts := layout.SplitColumns(page, columns)
	grouped := make([][]layout.Line, len(parts))
	rowCount := 0
	for i, part := range parts {
		grouped[i] = layout.GroupLines(part, a.layoutOpts...)
		rowCount = max(rowCount, len(grouped[i]))
	}

	rows := make([][]string, rowCount)
	for r := range rows {
		row := make([]string, len(grouped))
		for c, lines := range grouped {
			if r < len(lines) {
				row[c] = lines[r].Text()
			}
		}
		rows[r] = row
	}

	return []Block{NewTable(rows)}
}

// Assemble reconstructs the blocks of already decoded pages, inserting a page
// break after every page but the last. A nil page counts as a page that failed
// to decode: it contributes no content but keeps its page break.
func (a *Assembler) Assemble(pages []*pdf.PageLayout) []Block {
	blocks, _ := a.AssembleDocument(context.Background(), pageSlice(pages))
	return blocks
}

// AssembleDocument decodes every page of src and reconstructs its blocks.
//
// Pages are processed concurrently by up to the configured number of workers
// and joined in page order. A page that fails to decode is logged and
// contributes no content; its page break is kept. If ctx is cancelled, the
// blocks of the longest run of completed pages from the start are returned
// together with the context's error.
func (a *Assembler) AssembleDocument(ctx context.Context, src pdf.PageSource) ([]Block, error) {
	n := src.PageCount()
	if n <= 0 {
		return nil, nil
	}

	results := make([][]Block, n)
	done := make([]bool, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		number := i + 1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.processPage(src, number)
			done[i] = true
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	completed := n
	if err != nil {
		completed = 0
		for completed < n && done[completed] {
			completed++
		}
	}

	var out []Block
	for i := 0; i < completed; i++ {
		out = append(out, results[i]...)
		if i < n-1 {
			out = append(out, NewPageBreak())
		}
	}

	return out, err
}

// processPage decodes and reconstructs one page, logging and skipping failures
func (a *Assembler) processPage(src pdf.PageSource, number int) (blocks []Block) {
	logger := a.logger.WithField("page", number)

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("Skipping page that failed layout reconstruction")
			blocks = nil
		}
	}()

	page, err := src.PageLayout(number)
	if err != nil {
		logger.WithError(err).Warn("Skipping page that could not be extracted")
		return nil
	}

	blocks = a.PageBlocks(page)
	logger.WithField("blocks", len(blocks)).Debug("Assembled page")
	return blocks
}

// pageSlice adapts already decoded pages to PageSource
type pageSlice []*pdf.PageLayout

func (s pageSlice) PageCount() int {
	return len(s)
}

func (s pageSlice) PageLayout(number int) (*pdf.PageLayout, error) {
	if number < 1 || number > len(s) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", pdf.ErrPageOutOfRange, number, len(s))
	}
	if s[number-1] == nil {
		return nil, &pdf.PageExtractionError{Page: number, Err: errors.New("page was not decoded")}
	}
	return s[number-1], nil
}
