package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// newConfiguration creates a pdfcpu configuration for reading possibly
// imperfect real-world files
func newConfiguration(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}
	return conf
}

// Inspect reads the document structure with pdfcpu and reports page sizes and
// metadata. No text is decoded.
func Inspect(rs io.ReadSeeker, password string) (*Info, error) {
	ctx, err := api.ReadContext(rs, newConfiguration(password))
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	// Validation also resolves the document info dictionary
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to get page dimensions: %w", err)
	}

	info := &Info{
		PageCount: ctx.PageCount,
		PageSizes: make([]Size, len(dims)),
		Metadata: Metadata{
			Title:        ctx.XRefTable.Title,
			Author:       ctx.XRefTable.Author,
			Subject:      ctx.XRefTable.Subject,
			Keywords:     ctx.XRefTable.Keywords,
			Creator:      ctx.XRefTable.Creator,
			Producer:     ctx.XRefTable.Producer,
			CreationDate: parsePDFDate(ctx.XRefTable.CreationDate),
			ModDate:      parsePDFDate(ctx.XRefTable.ModDate),
		},
	}
	for i, d := range dims {
		info.PageSizes[i] = Size{Width: d.Width, Height: d.Height}
	}

	return info, nil
}

// InspectFile runs Inspect on a file
func InspectFile(filepath string, password string) (*Info, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Inspect(f, password)
}

// InspectBytes runs Inspect on an in-memory document
func InspectBytes(data []byte, password string) (*Info, error) {
	return Inspect(bytes.NewReader(data), password)
}

func parsePDFDate(dateStr string) time.Time {
	// PDF date format: D:YYYYMMDDHHmmSSOHH'mm
	if len(dateStr) >= 2 && dateStr[:2] == "D:" {
		dateStr = dateStr[2:]
	}

	layout := "20060102150405"
	if len(dateStr) >= 14 {
		t, err := time.Parse(layout, dateStr[:14])
		if err == nil {
			return t
		}
	}

	return time.Time{}
}
