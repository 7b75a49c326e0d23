package layout

import (
	"math"
	"sort"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

// DetectColumns estimates how many columns a page uses from the horizontal
// distribution of fragment start positions.
//
// Each x is quantized to the nearest bucket. With three or fewer distinct
// buckets the page has two columns if there is more than one bucket. Otherwise
// every gap between successive buckets larger than twice the mean gap counts as
// a column boundary. The result is capped at the configured maximum (3).
//
// This is a heuristic and misclassifies sparse or irregular pages.
func DetectColumns(page *pdf.PageLayout, opts ...Option) int {
	if page.IsEmpty() {
		return 1
	}
	config := newConfig(opts)

	buckets := Buckets(page.Fragments, config.BucketSize)
	if len(buckets) <= 3 {
		if len(buckets) > 1 {
			return min(2, config.MaxColumns)
		}
		return 1
	}

	var total float64
	gaps := make([]float64, len(buckets)-1)
	for i := 1; i < len(buckets); i++ {
		gaps[i-1] = buckets[i] - buckets[i-1]
		total += gaps[i-1]
	}
	mean := total / float64(len(gaps))

	large := 0
	for _, gap := range gaps {
		if gap > 2*mean {
			large++
		}
	}

	return min(large+1, config.MaxColumns)
}

// Buckets returns the distinct quantized x-coordinates of the fragments in
// ascending order
func Buckets(fragments []pdf.TextFragment, size float64) []float64 {
	if size <= 0 {
		size = DefaultBucketSize
	}

	seen := make(map[float64]struct{}, len(fragments))
	buckets := make([]float64, 0, len(fragments))
	for _, f := range fragments {
		b := math.Round(f.X/size) * size
		if b == 0 {
			b = 0 // fold -0
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		buckets = append(buckets, b)
	}

	sort.Float64s(buckets)
	return buckets
}
