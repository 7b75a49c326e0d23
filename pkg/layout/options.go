// Package layout reconstructs reading structure from positioned text fragments:
// it estimates a page's column count, partitions fragments into columns and
// groups fragments into ordered lines.
package layout

// Default values for layout analysis
const (
	DefaultLineTolerance = 5.0
	DefaultBucketSize    = 10.0
	DefaultMaxColumns    = 3
)

// Option is a function that modifies layout analysis behavior
type Option func(*config)

type config struct {
	LineTolerance float64
	BucketSize    float64
	MaxColumns    int
}

func newConfig(opts []Option) *config {
	c := &config{
		LineTolerance: DefaultLineTolerance,
		BucketSize:    DefaultBucketSize,
		MaxColumns:    DefaultMaxColumns,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.BucketSize <= 0 {
		c.BucketSize = DefaultBucketSize
	}
	if c.MaxColumns < 1 {
		c.MaxColumns = 1
	}
	return c
}

// WithLineTolerance sets the vertical distance below which two fragments share a line
func WithLineTolerance(tolerance float64) Option {
	return func(c *config) {
		c.LineTolerance = tolerance
	}
}

// WithBucketSize sets the width of the buckets x-coordinates are quantized to
// during column detection
func WithBucketSize(size float64) Option {
	return func(c *config) {
		c.BucketSize = size
	}
}

// WithMaxColumns caps the number of columns DetectColumns reports
func WithMaxColumns(n int) Option {
	return func(c *config) {
		c.MaxColumns = n
	}
}

// Helper functions
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
