package loader

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// FromCSV reads URLs from the first column of a CSV file.
func FromCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open csv")
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields

	var urls []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "loader: read csv row")
		}
		if len(record) == 0 {
			continue
		}
		if u := NormalizeURL(record[0]); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
