package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/pyhub-apps/pdf2docx-golang/pkg/blocks"
	"github.com/pyhub-apps/pdf2docx-golang/pkg/pdf"
)

// XML namespaces used in DOCX files
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
)

// US Letter with one inch margins, in twentieths of a point
const (
	pageWidthTwips  = 12240
	pageHeightTwips = 15840
	marginTwips     = 1440
	textWidthTwips  = pageWidthTwips - 2*marginTwips
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

const appXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"><Application>pdf2docx-golang</Application></Properties>`

// DocxExporter writes a WordprocessingML package
type DocxExporter struct {
	// Metadata fills the package core properties
	Metadata pdf.Metadata
}

// Extension returns "docx"
func (e *DocxExporter) Extension() string {
	return "docx"
}

// Export writes the blocks as a .docx package
func (e *DocxExporter) Export(w io.Writer, blks []blocks.Block) error {
	document, err := marshalPart(buildDocument(blks))
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	core, err := marshalPart(buildCoreProperties(e.Metadata))
	if err != nil {
		return fmt.Errorf("failed to encode core properties: %w", err)
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", document},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"docProps/core.xml", core},
		{"docProps/app.xml", []byte(appXML)},
	}
	for _, part := range parts {
		pw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := pw.Write(part.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish docx package: %w", err)
	}
	return nil
}

func marshalPart(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

// buildDocument maps blocks onto body elements in order
func buildDocument(blks []blocks.Block) *documentXML {
	doc := &documentXML{
		XmlnsW: nsW,
		XmlnsR: nsR,
		Body: bodyXML{
			SectPr: sectPrXML{
				PgSz: pgSzXML{W: pageWidthTwips, H: pageHeightTwips},
				PgMar: pgMarXML{
					Top: marginTwips, Right: marginTwips, Bottom: marginTwips, Left: marginTwips,
					Header: 720, Footer: 720,
				},
			},
		},
	}

	for _, b := range blks {
		switch b.Kind {
		case blocks.Paragraph:
			doc.Body.Content = append(doc.Body.Content, textParagraph(b.Text))
		case blocks.Table:
			if b.Columns() > 0 {
				doc.Body.Content = append(doc.Body.Content, borderlessTable(b.Rows))
			}
		case blocks.PageBreak:
			doc.Body.Content = append(doc.Body.Content, paragraphXML{
				Runs: []runXML{{Break: &breakXML{Type: "page"}}},
			})
		}
	}

	return doc
}

func textParagraph(text string) paragraphXML {
	if text == "" {
		return paragraphXML{}
	}
	return paragraphXML{
		Runs: []runXML{{Text: &textXML{Space: "preserve", Value: text}}},
	}
}

func borderlessTable(rows [][]string) tableXML {
	cols := len(rows[0])
	colWidth := textWidthTwips / cols

	none := borderXML{Val: "none"}
	tbl := tableXML{
		Props: tblPrXML{
			Width: widthXML{W: textWidthTwips, Type: "dxa"},
			Borders: tblBordersXML{
				Top: none, Left: none, Bottom: none, Right: none,
				InsideH: none, InsideV: none,
			},
		},
	}
	for range cols {
		tbl.Grid.Cols = append(tbl.Grid.Cols, gridColXML{W: colWidth})
	}
	for _, row := range rows {
		tr := rowXML{}
		for _, cell := range row {
			// a cell must hold at least one paragraph, even when empty
			tr.Cells = append(tr.Cells, cellXML{
				Props:      cellPrXML{Width: widthXML{W: colWidth, Type: "dxa"}},
				Paragraphs: []paragraphXML{textParagraph(cell)},
			})
		}
		tbl.Rows = append(tbl.Rows, tr)
	}
	return tbl
}

func buildCoreProperties(meta pdf.Metadata) *corePropertiesXML {
	core := &corePropertiesXML{
		XmlnsCP:      nsCP,
		XmlnsDC:      nsDC,
		XmlnsDCTerms: nsDCTerms,
		XmlnsXSI:     nsXSI,
		Title:        meta.Title,
		Subject:      meta.Subject,
		Creator:      meta.Author,
		Keywords:     meta.Keywords,
	}
	if !meta.CreationDate.IsZero() {
		core.Created = &w3cDateXML{Type: "dcterms:W3CDTF", Value: meta.CreationDate.UTC().Format(time.RFC3339)}
	}
	if !meta.ModDate.IsZero() {
		core.Modified = &w3cDateXML{Type: "dcterms:W3CDTF", Value: meta.ModDate.UTC().Format(time.RFC3339)}
	}
	return core
}

// documentXML represents word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    bodyXML  `xml:"w:body"`
}

// bodyXML holds paragraphs and tables in document order
type bodyXML struct {
	Content []any
	SectPr  sectPrXML `xml:"w:sectPr"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName xml.Name `xml:"w:p"`
	Runs    []runXML `xml:"w:r"`
}

type runXML struct {
	Text  *textXML  `xml:"w:t,omitempty"`
	Break *breakXML `xml:"w:br,omitempty"`
}

type textXML struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type breakXML struct {
	Type string `xml:"w:type,attr"`
}

// tableXML represents a table element (<w:tbl>).
type tableXML struct {
	XMLName xml.Name   `xml:"w:tbl"`
	Props   tblPrXML   `xml:"w:tblPr"`
	Grid    tblGridXML `xml:"w:tblGrid"`
	Rows    []rowXML   `xml:"w:tr"`
}

type tblPrXML struct {
	Width   widthXML      `xml:"w:tblW"`
	Borders tblBordersXML `xml:"w:tblBorders"`
}

type widthXML struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type tblBordersXML struct {
	Top     borderXML `xml:"w:top"`
	Left    borderXML `xml:"w:left"`
	Bottom  borderXML `xml:"w:bottom"`
	Right   borderXML `xml:"w:right"`
	InsideH borderXML `xml:"w:insideH"`
	InsideV borderXML `xml:"w:insideV"`
}

type borderXML struct {
	Val string `xml:"w:val,attr"`
}

type tblGridXML struct {
	Cols []gridColXML `xml:"w:gridCol"`
}

type gridColXML struct {
	W int `xml:"w:w,attr"`
}

// rowXML represents a table row (<w:tr>).
type rowXML struct {
	Cells []cellXML `xml:"w:tc"`
}

// cellXML represents a table cell (<w:tc>).
type cellXML struct {
	Props      cellPrXML      `xml:"w:tcPr"`
	Paragraphs []paragraphXML `xml:"w:p"`
}

type cellPrXML struct {
	Width widthXML `xml:"w:tcW"`
}

type sectPrXML struct {
	PgSz  pgSzXML  `xml:"w:pgSz"`
	PgMar pgMarXML `xml:"w:pgMar"`
}

type pgSzXML struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pgMarXML struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// corePropertiesXML represents docProps/core.xml
type corePropertiesXML struct {
	XMLName      xml.Name    `xml:"cp:coreProperties"`
	XmlnsCP      string      `xml:"xmlns:cp,attr"`
	XmlnsDC      string      `xml:"xmlns:dc,attr"`
	XmlnsDCTerms string      `xml:"xmlns:dcterms,attr"`
	XmlnsXSI     string      `xml:"xmlns:xsi,attr"`
	Title        string      `xml:"dc:title,omitempty"`
	Subject      string      `xml:"dc:subject,omitempty"`
	Creator      string      `xml:"dc:creator,omitempty"`
	Keywords     string      `xml:"cp:keywords,omitempty"`
	Created      *w3cDateXML `xml:"dcterms:created,omitempty"`
	Modified     *w3cDateXML `xml:"dcterms:modified,omitempty"`
}

type w3cDateXML struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}
