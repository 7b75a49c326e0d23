package pdf

import (
	"strings"
	"time"
)

// BoundingBox represents a rectangular area with coordinates
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Bottom
	X1 float64 // Right
	Y1 float64 // Top
}

// Metadata represents PDF document metadata
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate time.Time
	ModDate      time.Time
}

// TextFragment is a run of text decoded from a page's content stream.
//
// Coordinates are in PDF user space: the origin is the bottom-left corner of the
// page and Y grows upward, so a larger Y is nearer the top. Y is the baseline.
type TextFragment struct {
	Text   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BBox returns the fragment's bounding box
func (f TextFragment) BBox() BoundingBox {
	return BoundingBox{X0: f.X, Y0: f.Y, X1: f.X + f.Width, Y1: f.Y + f.Height}
}

// PageLayout holds the dimensions of a page and its fragments in extraction order.
type PageLayout struct {
	Number    int // 1-based
	Width     float64
	Height    float64
	Fragments []TextFragment
}

// IsEmpty reports whether the page carries no text.
func (p *PageLayout) IsEmpty() bool {
	return p == nil || len(p.Fragments) == 0
}

// Text returns the fragments' text in extraction order joined by spaces
func (p *PageLayout) Text() string {
	if p.IsEmpty() {
		return ""
	}
	parts := make([]string, len(p.Fragments))
	for i, f := range p.Fragments {
		parts[i] = f.Text
	}
	return strings.Join(parts, " ")
}

// Size is a page's width and height in points
type Size struct {
	Width  float64
	Height float64
}

// Info is what pdfcpu reports about a document without decoding any text.
type Info struct {
	PageCount int
	PageSizes []Size
	Metadata  Metadata
}

// Helper functions
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
