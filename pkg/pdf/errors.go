package pdf

import (
	"errors"
	"fmt"
)

var (
	// ErrPageOutOfRange is returned when a page number is not in [1, PageCount].
	ErrPageOutOfRange = errors.New("page number out of range")

	// ErrNoBackend is returned when no decoding backend could open the document.
	ErrNoBackend = errors.New("no PDF backend could open the document")
)

// PageExtractionError reports that a single page could not be decoded.
type PageExtractionError struct {
	Page int
	Err  error
}

func (e *PageExtractionError) Error() string {
	return fmt.Sprintf("failed to extract page %d: %v", e.Page, e.Err)
}

func (e *PageExtractionError) Unwrap() error {
	return e.Err
}
