package sink

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
)

// WriteJSON writes records atomically as a pretty-printed JSON array. An
// empty result set produces "[]", not "null".
func WriteJSON(path string, records []model.ClinicRecord) error {
	return writeAtomic(path, func(w io.Writer) error {
		if records == nil {
			records = []model.ClinicRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return eris.Wrap(enc.Encode(records), "sink: encode json")
	})
}

// ReadJSON reads records back from a JSON artifact.
func ReadJSON(path string) ([]model.ClinicRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "sink: open json")
	}
	defer func() { _ = f.Close() }()

	var records []model.ClinicRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil && err != io.EOF {
		return nil, eris.Wrap(err, "sink: decode json")
	}
	return records, nil
}
