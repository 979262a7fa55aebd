package sink

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
)

// WriteCSV writes records atomically in the fixed clinic_name ..
// website_provider column order. An empty result set still produces a
// header-only file.
func WriteCSV(path string, records []model.ClinicRecord) error {
	return writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		enc := csvutil.NewEncoder(cw)

		if len(records) == 0 {
			if err := enc.EncodeHeader(model.ClinicRecord{}); err != nil {
				return eris.Wrap(err, "sink: encode csv header")
			}
		}
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return eris.Wrap(err, "sink: encode csv record")
			}
		}

		cw.Flush()
		return eris.Wrap(cw.Error(), "sink: flush csv")
	})
}

// ReadCSV reads records back from a CSV artifact.
func ReadCSV(path string) ([]model.ClinicRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "sink: read csv")
	}

	var records []model.ClinicRecord
	if err := csvutil.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "sink: unmarshal csv")
	}
	return records, nil
}
