package pdf

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseDocumentBuildLayout(t *testing.T) {
	doc := &baseDocument{pageCount: 2}
	doc.applyInfo(&Info{
		PageCount: 2,
		PageSizes: []Size{{Width: 595, Height: 842}, {Width: 0, Height: 0}},
		Metadata:  Metadata{Title: "Report"},
	})

	first := doc.buildLayout(1, 612, 792, word("A4", 10, 10, 5, 10))
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 595.0, first.Width)
	assert.Equal(t, 842.0, first.Height)
	assert.Equal(t, []string{"A4"}, fragmentTexts(first.Fragments))

	// unusable sizes from inspection leave the decoder's size in place
	second := doc.buildLayout(2, 612, 792, nil)
	assert.Equal(t, 612.0, second.Width)
	assert.Equal(t, 792.0, second.Height)
	assert.True(t, second.IsEmpty())

	assert.Equal(t, "Report", doc.GetMetadata().Title)
}

func TestBaseDocumentApplyInfoPageCountMismatch(t *testing.T) {
	doc := &baseDocument{pageCount: 3}
	doc.applyInfo(&Info{PageCount: 1, PageSizes: []Size{{Width: 100, Height: 100}}})

	assert.Nil(t, doc.sizes)
	layout := doc.buildLayout(1, 612, 792, nil)
	assert.Equal(t, 612.0, layout.Width)
}

func TestBaseDocumentNormalizes(t *testing.T) {
	normalize, err := normalizer("nfkc")
	require.NoError(t, err)

	doc := &baseDocument{pageCount: 1, normalize: normalize}
	layout := doc.buildLayout(1, 612, 792, []Glyph{{S: "ﬁ", FontSize: 10, X: 0, Y: 0, W: 5}, {S: "ne", FontSize: 10, X: 5, Y: 0, W: 10}})

	assert.Equal(t, []string{"fine"}, fragmentTexts(layout.Fragments))
}

func TestCheckPage(t *testing.T) {
	doc := &baseDocument{pageCount: 2}

	assert.NoError(t, doc.checkPage(1))
	assert.NoError(t, doc.checkPage(2))
	assert.ErrorIs(t, doc.checkPage(0), ErrPageOutOfRange)
	assert.ErrorIs(t, doc.checkPage(3), ErrPageOutOfRange)
}

func TestNormalizer(t *testing.T) {
	fn, err := normalizer("")
	assert.NoError(t, err)
	assert.Nil(t, fn)

	for _, form := range []string{"NFC", "nfd", " NFKC ", "NFKD"} {
		fn, err := normalizer(form)
		assert.NoError(t, err, form)
		assert.NotNil(t, fn, form)
	}

	_, err = normalizer("NFX")
	assert.Error(t, err)
}

func TestRecoverPage(t *testing.T) {
	decode := func() (err error) {
		defer recoverPage(4, &err)
		panic("malformed content stream")
	}

	err := decode()

	var pageErr *PageExtractionError
	require.True(t, errors.As(err, &pageErr))
	assert.Equal(t, 4, pageErr.Page)
	assert.Contains(t, err.Error(), "malformed content stream")
}

func TestPageExtractionErrorUnwrap(t *testing.T) {
	cause := errors.New("bad stream")
	err := error(&PageExtractionError{Page: 2, Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to extract page 2: bad stream", err.Error())
}

func TestPasswordOnce(t *testing.T) {
	pw := passwordOnce("secret")

	assert.Equal(t, "secret", pw())
	assert.Equal(t, "", pw())
	assert.Equal(t, "", pw())
}

func TestParsePDFDate(t *testing.T) {
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), parsePDFDate("D:20240102030405+01'00'"))
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), parsePDFDate("20240102030405"))
	assert.True(t, parsePDFDate("").IsZero())
	assert.True(t, parsePDFDate("D:2024").IsZero())
	assert.True(t, parsePDFDate("D:yesterdaynoon!").IsZero())
}

func TestOpenBytesRejectsNonPDF(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := OpenBytes([]byte("this is not a PDF"), WithLogger(logger), WithInspection(false))
	assert.ErrorIs(t, err, ErrNoBackend)

	_, err = OpenBytes([]byte("%PDF-1.4"), WithLogger(logger), WithBackend("poppler"))
	assert.ErrorContains(t, err, "unknown backend")
}

func TestOpenMissingFile(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := Open("testdata/does-not-exist.pdf", WithLogger(logger))
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestPageLayoutText(t *testing.T) {
	page := &PageLayout{Fragments: []TextFragment{{Text: "b"}, {Text: "a"}}}
	assert.Equal(t, "b a", page.Text())

	var nilPage *PageLayout
	assert.True(t, nilPage.IsEmpty())
	assert.Equal(t, "", nilPage.Text())
}
