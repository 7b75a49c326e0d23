package layout

import (
	"math"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

// SplitColumns partitions a page's fragments into columnCount equal-width
// vertical bands, left to right. A fragment belongs to the band containing its
// x; for two columns this puts x < width/2 on the left and everything else on
// the right.
//
// When the page width is unknown the rightmost fragment edge stands in for it.
// Every band is present in the result, possibly empty.
func SplitColumns(page *pdf.PageLayout, columnCount int) [][]pdf.TextFragment {
	if columnCount < 1 {
		columnCount = 1
	}
	columns := make([][]pdf.TextFragment, columnCount)
	for i := range columns {
		columns[i] = []pdf.TextFragment{}
	}
	if page.IsEmpty() {
		return columns
	}

	width := page.Width
	if width <= 0 {
		for _, f := range page.Fragments {
			width = math.Max(width, f.X+f.Width)
		}
	}
	if columnCount == 1 || width <= 0 {
		columns[0] = append(columns[0], page.Fragments...)
		return columns
	}

	band := width / float64(columnCount)
	for _, f := range page.Fragments {
		i := int(math.Floor(f.X / band))
		i = max(0, min(i, columnCount-1))
		columns[i] = append(columns[i], f)
	}

	return columns
}
