package loader

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// FromXLSX reads URLs from the first column of the first sheet of an XLSX
// workbook. A first row that looks like a header ("url", "website") is
// skipped; spreadsheet exports almost always carry one.
func FromXLSX(path string) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("loader: xlsx has no sheets")
	}

	var urls []string
	for i, row := range f.Sheets[0].Rows {
		if len(row.Cells) == 0 {
			continue
		}
		raw := strings.TrimSpace(row.Cells[0].String())
		if i == 0 && isHeaderCell(raw) {
			continue
		}
		if u := NormalizeURL(raw); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

func isHeaderCell(s string) bool {
	switch strings.ToLower(s) {
	case "url", "website", "website_url", "domain":
		return true
	}
	return false
}
