package pdf

import (
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Merge concatenates the pages of inFiles, in order, into outFile
func Merge(inFiles []string, outFile string) error {
	if len(inFiles) == 0 {
		return errors.New("no input files to merge")
	}
	if err := api.MergeCreateFile(inFiles, outFile, false, newConfiguration("")); err != nil {
		return fmt.Errorf("failed to merge PDFs: %w", err)
	}
	return nil
}

// Split writes pages start..end (1-based, inclusive) of inFile to outFile.
// An end beyond the last page is clamped to the page count.
func Split(inFile, outFile string, start, end int) error {
	if start < 1 || end < start {
		return fmt.Errorf("invalid page range %d-%d", start, end)
	}

	count, err := api.PageCountFile(inFile)
	if err != nil {
		return fmt.Errorf("failed to count pages: %w", err)
	}
	if start > count {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, start, count)
	}
	end = min(end, count)

	selection := []string{fmt.Sprintf("%d-%d", start, end)}
	if err := api.TrimFile(inFile, outFile, selection, newConfiguration("")); err != nil {
		return fmt.Errorf("failed to split PDF: %w", err)
	}
	return nil
}

// Compress rewrites inFile to outFile with pdfcpu's optimizer, which drops unused
// objects and merges duplicate fonts and images. Page content is not re-rendered.
func Compress(inFile, outFile string) error {
	if outFile == "" {
		return errors.New("no output file")
	}
	if err := api.OptimizeFile(inFile, outFile, newConfiguration("")); err != nil {
		return fmt.Errorf("failed to compress PDF: %w", err)
	}
	return nil
}
