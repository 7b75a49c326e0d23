package pdf

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type infoApplier interface {
	applyInfo(info *Info)
}

// Open opens a PDF file and returns a Document.
//
// With the "auto" backend, ledongthuc/pdf is tried first as it has the most
// accurate text extraction, then dslipak/pdf. Unless disabled, pdfcpu then
// inspects the file for authoritative page sizes and metadata; an inspection
// failure is logged and otherwise ignored.
func Open(filepath string, opts ...OpenOption) (Document, error) {
	config := newOpenConfig(opts)
	logger := config.Logger.WithField("path", filepath)

	doc, err := openChain(config, logger, map[string]func() (Document, error){
		BackendLedongthuc: func() (Document, error) { return OpenWithLedongthuc(filepath, opts...) },
		BackendDslipak:    func() (Document, error) { return OpenWithDslipak(filepath, opts...) },
	})
	if err != nil {
		return nil, err
	}

	if config.Inspect {
		info, err := InspectFile(filepath, config.Password)
		inspected(doc, info, err, logger)
	}
	return doc, nil
}

// OpenBytes opens an in-memory PDF; see Open
func OpenBytes(data []byte, opts ...OpenOption) (Document, error) {
	config := newOpenConfig(opts)
	logger := config.Logger.WithField("size", len(data))

	doc, err := openChain(config, logger, map[string]func() (Document, error){
		BackendLedongthuc: func() (Document, error) { return OpenWithLedongthucBytes(data, opts...) },
		BackendDslipak:    func() (Document, error) { return OpenWithDslipakBytes(data, opts...) },
	})
	if err != nil {
		return nil, err
	}

	if config.Inspect {
		info, err := InspectBytes(data, config.Password)
		inspected(doc, info, err, logger)
	}
	return doc, nil
}

func openChain(config *openConfig, logger logrus.FieldLogger, openers map[string]func() (Document, error)) (Document, error) {
	var order []string
	switch config.Backend {
	case BackendAuto, "":
		order = []string{BackendLedongthuc, BackendDslipak}
	case BackendLedongthuc, BackendDslipak:
		order = []string{config.Backend}
	default:
		return nil, fmt.Errorf("unknown backend %q", config.Backend)
	}

	var errs []error
	for _, name := range order {
		doc, err := openers[name]()
		if err == nil {
			logger.WithField("backend", name).Debug("Opened PDF")
			return doc, nil
		}
		logger.WithField("backend", name).WithError(err).Debug("Backend failed to open PDF")
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrNoBackend, errors.Join(errs...))
}

func inspected(doc Document, info *Info, err error, logger logrus.FieldLogger) {
	if err != nil {
		logger.WithError(err).Warn("pdfcpu inspection failed, using decoder page sizes")
		return
	}
	if applier, ok := doc.(infoApplier); ok {
		applier.applyInfo(info)
	}
}
