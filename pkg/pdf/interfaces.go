package pdf

// Document represents an opened PDF whose pages can be decoded into positioned text
type Document interface {
	// GetMetadata returns the PDF metadata
	GetMetadata() Metadata

	// PageCount returns the total number of pages
	PageCount() int

	// PageLayout decodes the page with the given 1-based number
	PageLayout(number int) (*PageLayout, error)

	// Close releases resources associated with the document
	Close() error
}

// PageSource is the subset of Document needed to walk pages.
type PageSource interface {
	PageCount() int
	PageLayout(number int) (*PageLayout, error)
}
