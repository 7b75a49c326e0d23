package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/blocks"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

func sample() []blocks.Block {
	return []blocks.Block{
		blocks.NewParagraph("Quarterly report"),
		blocks.NewParagraph("R&D <draft>"),
		blocks.NewPageBreak(),
		blocks.NewTable([][]string{
			{"left one", "right one"},
			{"left two", ""},
		}),
	}
}

// readParts unpacks a docx package into part name -> content
func readParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = string(content)
	}
	return parts
}

func assertWellFormed(t *testing.T, name, content string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(content))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, name)
	}
}

func TestDocxExporterPackage(t *testing.T) {
	data, err := Bytes(&DocxExporter{}, sample())
	require.NoError(t, err)

	parts := readParts(t, data)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"docProps/core.xml",
		"docProps/app.xml",
	} {
		require.Contains(t, parts, name)
		assertWellFormed(t, name, parts[name])
	}
}

func TestDocxExporterDocument(t *testing.T) {
	data, err := Bytes(&DocxExporter{}, sample())
	require.NoError(t, err)

	document := readParts(t, data)["word/document.xml"]

	assert.Contains(t, document, `<w:t xml:space="preserve">Quarterly report</w:t>`)
	assert.Contains(t, document, "R&amp;D &lt;draft&gt;")
	assert.Contains(t, document, `<w:br w:type="page"></w:br>`)
	assert.Equal(t, 1, strings.Count(document, "<w:tbl>"))
	assert.Equal(t, 2, strings.Count(document, "<w:tr>"))
	assert.Equal(t, 4, strings.Count(document, "<w:tc>"))
	assert.Equal(t, 2, strings.Count(document, "<w:gridCol "))
	assert.Equal(t, 6, strings.Count(document, `w:val="none"`))
	assert.Contains(t, document, "<w:sectPr>")

	// blocks keep their order
	order := []string{"Quarterly report", "R&amp;D", `w:type="page"`, "left one", "right one", "left two"}
	last := -1
	for _, s := range order {
		idx := strings.Index(document, s)
		require.Greater(t, idx, last, s)
		last = idx
	}

	// section properties close the body
	assert.Less(t, strings.LastIndex(document, "</w:tbl>"), strings.Index(document, "<w:sectPr>"))
}

func TestDocxExporterEmptyCellHasParagraph(t *testing.T) {
	data, err := Bytes(&DocxExporter{}, []blocks.Block{blocks.NewTable([][]string{{"", ""}})})
	require.NoError(t, err)

	document := readParts(t, data)["word/document.xml"]

	assert.Equal(t, 2, strings.Count(document, "<w:tc>"))
	assert.Equal(t, 2, strings.Count(document, "<w:p></w:p>"))
}

func TestDocxExporterCoreProperties(t *testing.T) {
	exporter := &DocxExporter{Metadata: pdf.Metadata{
		Title:        "Annual <Report>",
		Author:       "Finance",
		Keywords:     "finance, q3",
		CreationDate: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	data, err := Bytes(exporter, nil)
	require.NoError(t, err)

	core := readParts(t, data)["docProps/core.xml"]
	assert.Contains(t, core, "<dc:title>Annual &lt;Report&gt;</dc:title>")
	assert.Contains(t, core, "<dc:creator>Finance</dc:creator>")
	assert.Contains(t, core, "<cp:keywords>finance, q3</cp:keywords>")
	assert.Contains(t, core, `<dcterms:created xsi:type="dcterms:W3CDTF">2024-01-02T03:04:05Z</dcterms:created>`)
	assert.NotContains(t, core, "dcterms:modified")
	assert.NotContains(t, core, "dc:subject")
}

func TestCSVExporter(t *testing.T) {
	data, err := Bytes(&CSVExporter{}, sample())
	require.NoError(t, err)

	assert.Equal(t,
		"Content\n"+
			"Quarterly report R&D <draft>\n"+
			"left one right one left two\n",
		string(data))
}

func TestCSVExporterQuoting(t *testing.T) {
	data, err := Bytes(&CSVExporter{}, []blocks.Block{
		blocks.NewParagraph(`Total, "net"`),
		blocks.NewPageBreak(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Content\n\"Total, \"\"net\"\"\"\n\n", string(data))
}

func TestTextExporter(t *testing.T) {
	data, err := Bytes(&TextExporter{}, sample())
	require.NoError(t, err)

	assert.Equal(t,
		"Quarterly report\n"+
			"R&D <draft>\n"+
			"\f"+
			"left one\tright one\n"+
			"left two\t\n",
		string(data))
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format    string
		extension string
	}{
		{"docx", "docx"},
		{"Word", "docx"},
		{"csv", "csv"},
		{"excel", "csv"},
		{" TXT ", "txt"},
		{"text", "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			e, err := ForFormat(tt.format, pdf.Metadata{})
			require.NoError(t, err)
			assert.Equal(t, tt.extension, e.Extension())
		})
	}

	_, err := ForFormat("pdf", pdf.Metadata{})
	assert.ErrorContains(t, err, "unsupported export format")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestExportersReportWriteErrors(t *testing.T) {
	for _, e := range []Exporter{&DocxExporter{}, &CSVExporter{}, &TextExporter{}} {
		t.Run(e.Extension(), func(t *testing.T) {
			assert.ErrorContains(t, e.Export(failingWriter{}, sample()), "disk full")
		})
	}
}
