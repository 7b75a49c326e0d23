// Package blocks assembles decoded pages into the ordered sequence of
// paragraphs, tables and page breaks handed to a document exporter.
package blocks

// Kind identifies the variant of a Block
type Kind int

const (
	Paragraph Kind = iota
	Table
	PageBreak
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Table:
		return "table"
	case PageBreak:
		return "page_break"
	default:
		return "unknown"
	}
}

// Block is one unit of the reconstructed document.
//
// Text is set for paragraphs and Rows for tables; a page break carries neither.
// Every row of a table has the same number of cells.
type Block struct {
	Kind Kind
	Text string
	Rows [][]string
}

// NewParagraph returns a paragraph block
func NewParagraph(text string) Block {
	return Block{Kind: Paragraph, Text: text}
}

// NewTable returns a table block
func NewTable(rows [][]string) Block {
	return Block{Kind: Table, Rows: rows}
}

// NewPageBreak returns a page break block
func NewPageBreak() Block {
	return Block{Kind: PageBreak}
}

// Columns returns the number of cells per row of a table block
func (b Block) Columns() int {
	if len(b.Rows) == 0 {
		return 0
	}
	return len(b.Rows[0])
}

// SplitPages cuts a block sequence at its page breaks. The result has one entry
// per page, empty for pages that contributed nothing.
func SplitPages(blocks []Block) [][]Block {
	pages := [][]Block{{}}
	for _, b := range blocks {
		if b.Kind == PageBreak {
			pages = append(pages, []Block{})
			continue
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], b)
	}
	return pages
}
