package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "http://example.com", NormalizeURL("example.com"))
	assert.Equal(t, "http://example.com", NormalizeURL("  example.com  "))
	assert.Equal(t, "https://example.com", NormalizeURL("https://example.com"))
	assert.Equal(t, "http://already.com", NormalizeURL("http://already.com"))
	assert.Equal(t, "", NormalizeURL("   "))
}

func TestFromCSV_FirstColumn(t *testing.T) {
	path := writeFile(t, "urls.csv", "a.example.com,Springfield\nhttps://b.example.com,Shelbyville\n\n")

	urls, err := FromCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.example.com", "https://b.example.com"}, urls)
}

func TestFromJSON_ArrayOfObjects(t *testing.T) {
	path := writeFile(t, "urls.json", `[
		{"url": "a.example.com", "name": "A"},
		{"name": "no url here"},
		{"url": "https://b.example.com"}
	]`)

	urls, err := FromJSON(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.example.com", "https://b.example.com"}, urls)
}

func TestFromJSON_NotAnArray(t *testing.T) {
	path := writeFile(t, "urls.json", `{"url": "a.example.com"}`)

	_, err := FromJSON(path)
	assert.Error(t, err)
}

func TestFromXLSX_FirstSheetWithHeader(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Prospects")
	require.NoError(t, err)

	for _, v := range []string{"website_url", "a.example.com", "", "https://b.example.com"} {
		sheet.AddRow().AddCell().Value = v
	}

	path := filepath.Join(t.TempDir(), "urls.xlsx")
	require.NoError(t, f.Save(path))

	urls, err := FromXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.example.com", "https://b.example.com"}, urls)
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	path := writeFile(t, "urls.json", `[{"url": "a.example.com"}]`)

	assert.Equal(t, []string{"http://a.example.com"}, Load(path))
}

func TestLoad_MalformedFileYieldsEmptyList(t *testing.T) {
	path := writeFile(t, "urls.json", `{{{`)

	assert.Empty(t, Load(path))
}

func TestLoad_MissingFileYieldsEmptyList(t *testing.T) {
	assert.Empty(t, Load(filepath.Join(t.TempDir(), "nope.csv")))
}
