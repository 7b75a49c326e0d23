package layout

import (
	"sort"
	"strings"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

// Line is a run of fragments sharing one horizontal text row, ordered left to right
type Line struct {
	Fragments []pdf.TextFragment
	y         float64
}

// Y returns the line's representative y: the y of the fragment that started it
func (l Line) Y() float64 {
	return l.y
}

// Text joins the fragments' text with single spaces
func (l Line) Text() string {
	parts := make([]string, len(l.Fragments))
	for i, f := range l.Fragments {
		parts[i] = f.Text
	}
	return strings.Join(parts, " ")
}

// BBox returns the union of the fragments' bounding boxes
func (l Line) BBox() pdf.BoundingBox {
	if len(l.Fragments) == 0 {
		return pdf.BoundingBox{}
	}
	box := l.Fragments[0].BBox()
	for _, f := range l.Fragments[1:] {
		b := f.BBox()
		box.X0 = min(box.X0, b.X0)
		box.Y0 = min(box.Y0, b.Y0)
		box.X1 = max(box.X1, b.X1)
		box.Y1 = max(box.Y1, b.Y1)
	}
	return box
}

// GroupLines clusters fragments into lines ordered top to bottom.
//
// Fragments are sorted by descending y, and by ascending x when their y values
// are within the line tolerance. Each fragment then joins the first existing
// line whose representative y is within tolerance, or starts a new line. This
// is first-fit, not best-fit: with adversarial y jitter it can merge or split
// rows differently from a nearest-line clustering.
//
// The result does not depend on the order of the input, which is left untouched.
func GroupLines(fragments []pdf.TextFragment, opts ...Option) []Line {
	if len(fragments) == 0 {
		return nil
	}
	config := newConfig(opts)
	tolerance := config.LineTolerance

	sorted := sortFragments(fragments, tolerance)

	var lines []Line
	for _, f := range sorted {
		placed := false
		for i := range lines {
			if sameRow(lines[i].y, f.Y, tolerance) {
				lines[i].Fragments = append(lines[i].Fragments, f)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, Line{Fragments: []pdf.TextFragment{f}, y: f.Y})
		}
	}

	for i := range lines {
		line := lines[i].Fragments
		sort.SliceStable(line, func(a, b int) bool {
			return line[a].X < line[b].X
		})
	}

	// Line creation follows the tolerance order, which is not strictly by y
	sort.SliceStable(lines, func(a, b int) bool {
		return lines[a].y > lines[b].y
	})

	return lines
}

// sortFragments returns a copy of fragments in reading order.
//
// The copy is first put in a canonical order so that the tolerance comparator,
// which is not transitive, sees the same sequence for any input permutation.
func sortFragments(fragments []pdf.TextFragment, tolerance float64) []pdf.TextFragment {
	sorted := make([]pdf.TextFragment, len(fragments))
	copy(sorted, fragments)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.Y != b.Y:
			return a.Y > b.Y
		case a.X != b.X:
			return a.X < b.X
		case a.Text != b.Text:
			return a.Text < b.Text
		case a.Width != b.Width:
			return a.Width < b.Width
		default:
			return a.Height < b.Height
		}
	})

	sort.SliceStable(sorted, func(i, j int) bool {
		// PDF coordinates: Y increases upward
		if !sameRow(sorted[i].Y, sorted[j].Y, tolerance) {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	return sorted
}

// sameRow reports whether two y values are close enough to share a line.
// Identical values always do, whatever the tolerance.
func sameRow(a, b, tolerance float64) bool {
	d := abs(a - b)
	return d == 0 || d < tolerance
}
