package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	t.Setenv("PDF2DOCX_TEST_STRING", "  ledongthuc ")
	assert.Equal(t, "ledongthuc", String("PDF2DOCX_TEST_STRING", "auto"))

	t.Setenv("PDF2DOCX_TEST_STRING", "   ")
	assert.Equal(t, "auto", String("PDF2DOCX_TEST_STRING", "auto"))
}

func TestInt(t *testing.T) {
	t.Setenv("PDF2DOCX_TEST_INT", "8")
	n, err := Int("PDF2DOCX_TEST_INT", 1)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	t.Setenv("PDF2DOCX_TEST_INT", "")
	n, err = Int("PDF2DOCX_TEST_INT", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	t.Setenv("PDF2DOCX_TEST_INT", "many")
	n, err = Int("PDF2DOCX_TEST_INT", 1)
	assert.EqualError(t, err, "environment variable PDF2DOCX_TEST_INT must be an integer, got: many")
	assert.Equal(t, 1, n)
}

func TestFloat(t *testing.T) {
	t.Setenv("PDF2DOCX_TEST_FLOAT", "2.5")
	f, err := Float("PDF2DOCX_TEST_FLOAT", 5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	t.Setenv("PDF2DOCX_TEST_FLOAT", "wide")
	f, err = Float("PDF2DOCX_TEST_FLOAT", 5)
	assert.Error(t, err)
	assert.Equal(t, 5.0, f)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PDF2DOCX_TEST_LOADED=from-file\nPDF2DOCX_TEST_PRESET=from-file\n"), 0o600))

	t.Setenv("PDF2DOCX_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("PDF2DOCX_TEST_LOADED") })

	require.NoError(t, Load(path))

	assert.Equal(t, "from-file", os.Getenv("PDF2DOCX_TEST_LOADED"))
	assert.Equal(t, "from-env", os.Getenv("PDF2DOCX_TEST_PRESET"), "existing variables win")
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}
