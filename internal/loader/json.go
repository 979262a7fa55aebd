package loader

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// FromJSON reads URLs from a JSON array of objects carrying a "url" key.
// Elements without one are skipped. The array is decoded streaming so large
// prospect exports don't need to fit in memory twice.
func FromJSON(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open json")
	}
	defer func() { _ = f.Close() }()

	decoder := json.NewDecoder(f)

	tok, err := decoder.Token()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "loader: read opening token")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, eris.Errorf("loader: expected JSON array, got %v", tok)
	}

	var urls []string
	for decoder.More() {
		var item struct {
			URL string `json:"url"`
		}
		if err := decoder.Decode(&item); err != nil {
			return nil, eris.Wrap(err, "loader: decode element")
		}
		if u := NormalizeURL(item.URL); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
