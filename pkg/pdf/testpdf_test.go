package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type testLine struct {
	text string
	x, y float64
}

type testPage struct {
	// width and height override the MediaBox inherited from the page tree when set
	width, height float64
	lines         []testLine
}

// buildPDF writes an uncompressed PDF with a Helvetica font of uniform 500/1000
// glyph widths, drawing every line at 12pt. The page tree carries a US Letter
// MediaBox and the font resources that pages inherit.
func buildPDF(info string, pages ...testPage) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> >>",
		strings.Join(kids, " "), len(pages)))
	obj(fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [%s] >>",
		strings.TrimSpace(strings.Repeat("500 ", 95))))

	for i, page := range pages {
		var content strings.Builder
		for _, line := range page.lines {
			fmt.Fprintf(&content, "BT /F1 12 Tf %g %g Td (%s) Tj ET\n", line.x, line.y, line.text)
		}
		box := ""
		if page.width > 0 && page.height > 0 {
			box = fmt.Sprintf(" /MediaBox [0 0 %g %g]", page.width, page.height)
		}
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Contents %d 0 R%s >>", 5+2*i, box))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()))
	}

	if info == "" {
		info = "<< /Producer (pdf2docx tests) >>"
	}
	obj(info)

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, len(offsets), xref)

	return buf.Bytes()
}

// writePDF stores a generated PDF in a temporary directory and returns its path
func writePDF(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

const reportInfo = "<< /Title (Report) /Author (Ann) /Keywords (finance, q3) >>"

// reportPDF has a two-column first page inheriting its MediaBox and a smaller
// second page with its own
func reportPDF() []byte {
	return buildPDF(reportInfo,
		testPage{lines: []testLine{
			{"Hello world", 72, 700},
			{"Second line", 72, 680},
			{"Right side", 350, 700},
		}},
		testPage{width: 400, height: 300, lines: []testLine{
			{"Small page", 50, 250},
		}},
	)
}
