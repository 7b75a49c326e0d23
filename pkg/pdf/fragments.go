package pdf

import (
	"math"
	"strings"
)

// Glyph is a single decoded text item as the backends report it: usually one
// character, positioned at its baseline origin.
type Glyph struct {
	S        string
	Font     string
	FontSize float64
	X        float64
	Y        float64
	W        float64
}

const (
	// joinGap is the largest gap, relative to font size, that joins two glyphs
	// without a space
	joinGap = 0.2
	// wordGap is the largest gap, relative to font size, that still joins two
	// glyphs into the same run with a space between them
	wordGap = 1.0
)

// MergeGlyphs merges consecutive glyphs on the same baseline into text runs.
//
// Whitespace glyphs only contribute spacing. Runs are trimmed and runs with no
// visible text are dropped. Glyph order is kept: a run never reaches back to an
// earlier glyph.
func MergeGlyphs(glyphs []Glyph) []TextFragment {
	var (
		fragments    []TextFragment
		run          strings.Builder
		open         bool
		pendingSpace bool
		x0, y, end   float64
		size         float64
	)

	flush := func() {
		if open {
			if text := strings.TrimSpace(run.String()); text != "" {
				fragments = append(fragments, TextFragment{
					Text:   text,
					X:      x0,
					Y:      y,
					Width:  end - x0,
					Height: size,
				})
			}
		}
		run.Reset()
		open = false
		pendingSpace = false
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		if strings.TrimSpace(g.S) == "" {
			if open {
				pendingSpace = true
			}
			continue
		}

		gsize := math.Max(g.FontSize, 1)
		if open && sameBaseline(y, size, g.Y, gsize) {
			gap := g.X - end
			switch {
			case gap >= -size && gap <= joinGap*size && !pendingSpace:
				run.WriteString(g.S)
				end = math.Max(end, g.X+g.W)
				continue
			case gap >= -size && gap <= wordGap*size:
				run.WriteByte(' ')
				run.WriteString(g.S)
				end = math.Max(end, g.X+g.W)
				pendingSpace = false
				continue
			}
		}

		flush()
		open = true
		run.WriteString(g.S)
		x0, y, end, size = g.X, g.Y, g.X+g.W, gsize
	}
	flush()

	return fragments
}

// sameBaseline checks whether a glyph continues the current run's line and size
func sameBaseline(runY, runSize, y, size float64) bool {
	if abs(runSize-size) > 0.5 {
		return false
	}
	return abs(runY-y) < math.Max(0.5*runSize, 1)
}
