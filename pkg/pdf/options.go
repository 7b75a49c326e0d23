package pdf

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"
)

// Backend names accepted by WithBackend
const (
	BackendAuto       = "auto"
	BackendLedongthuc = "ledongthuc"
	BackendDslipak    = "dslipak"
)

// OpenOption is a function that modifies how a document is opened
type OpenOption func(*openConfig)

type openConfig struct {
	Backend     string
	Password    string
	UnicodeNorm string
	Inspect     bool
	Logger      logrus.FieldLogger
}

func newOpenConfig(opts []OpenOption) *openConfig {
	config := &openConfig{
		Backend: BackendAuto,
		Inspect: true,
		Logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithBackend selects the decoding backend: "auto", "ledongthuc" or "dslipak"
func WithBackend(name string) OpenOption {
	return func(c *openConfig) {
		c.Backend = strings.ToLower(strings.TrimSpace(name))
	}
}

// WithPassword sets the password used to decrypt the document
func WithPassword(password string) OpenOption {
	return func(c *openConfig) {
		c.Password = password
	}
}

// WithUnicodeNorm normalizes fragment text to the given form (NFC, NFD, NFKC, NFKD)
func WithUnicodeNorm(form string) OpenOption {
	return func(c *openConfig) {
		c.UnicodeNorm = form
	}
}

// WithInspection enables or disables the pdfcpu pass that fixes page sizes and
// reads document metadata
func WithInspection(enabled bool) OpenOption {
	return func(c *openConfig) {
		c.Inspect = enabled
	}
}

// WithLogger sets the logger used while opening and decoding
func WithLogger(logger logrus.FieldLogger) OpenOption {
	return func(c *openConfig) {
		c.Logger = logger
	}
}

// normalizer returns the text transform for a normalization form name
func normalizer(form string) (func(string) string, error) {
	switch strings.ToUpper(strings.TrimSpace(form)) {
	case "":
		return nil, nil
	case "NFC":
		return norm.NFC.String, nil
	case "NFD":
		return norm.NFD.String, nil
	case "NFKC":
		return norm.NFKC.String, nil
	case "NFKD":
		return norm.NFKD.String, nil
	default:
		return nil, fmt.Errorf("unknown unicode normalization form %q", form)
	}
}

// normalizeFragments applies fn to every fragment's text in place
func normalizeFragments(fragments []TextFragment, fn func(string) string) []TextFragment {
	if fn == nil {
		return fragments
	}
	for i := range fragments {
		fragments[i].Text = fn(fragments[i].Text)
	}
	return fragments
}
