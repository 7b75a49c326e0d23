package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

func frag(text string, x, y float64) pdf.TextFragment {
	return pdf.TextFragment{Text: text, X: x, Y: y, Width: 20, Height: 10}
}

func pageAt(xs ...float64) *pdf.PageLayout {
	page := &pdf.PageLayout{Number: 1, Width: 600, Height: 800}
	for i, x := range xs {
		page.Fragments = append(page.Fragments, frag("t", x, 700-float64(i)*20))
	}
	return page
}

func TestDetectColumns(t *testing.T) {
	tests := []struct {
		name     string
		page     *pdf.PageLayout
		opts     []Option
		expected int
	}{
		{
			name:     "Nil page",
			page:     nil,
			expected: 1,
		},
		{
			name:     "No fragments",
			page:     &pdf.PageLayout{Width: 600, Height: 800},
			expected: 1,
		},
		{
			name:     "Single bucket",
			page:     pageAt(48, 50, 52, 54),
			expected: 1,
		},
		{
			name:     "Two buckets",
			page:     pageAt(50, 300),
			expected: 2,
		},
		{
			name:     "Three buckets",
			page:     pageAt(50, 200, 400),
			expected: 2,
		},
		{
			name:     "Two well separated bands",
			page:     pageAt(50, 60, 70, 80, 320, 330, 340),
			expected: 2,
		},
		{
			name:     "Three bands",
			page:     pageAt(50, 60, 70, 250, 260, 450, 460),
			expected: 3,
		},
		{
			name:     "Four bands are capped",
			page:     pageAt(50, 60, 250, 260, 450, 460, 650, 660),
			expected: 3,
		},
		{
			name:     "Custom cap",
			page:     pageAt(50, 60, 70, 250, 260, 450, 460),
			opts:     []Option{WithMaxColumns(2)},
			expected: 2,
		},
		{
			name:     "Evenly spread starts",
			page:     pageAt(0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectColumns(tt.page, tt.opts...))
		})
	}
}

func TestDetectColumnsFewerThanTwoBucketsIsSingleColumn(t *testing.T) {
	for _, x := range []float64{0, 4.9, 37, 95, 512.3} {
		page := pageAt(x, x, x)
		assert.Equal(t, 1, DetectColumns(page), "x=%v", x)
	}
}

func TestBuckets(t *testing.T) {
	fragments := []pdf.TextFragment{
		frag("a", 52, 0),
		frag("b", 14, 0),
		frag("c", 48, 0),
		frag("d", 16, 0),
		frag("e", -3, 0),
	}

	assert.Equal(t, []float64{0, 10, 20, 50}, Buckets(fragments, 10))
	assert.Equal(t, []float64{0, 50}, Buckets(fragments, 50))
	assert.Equal(t, Buckets(fragments, 10), Buckets(fragments, 0), "non-positive size falls back to the default")
}
