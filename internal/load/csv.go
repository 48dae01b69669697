package load

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/tabuladb/tabula/internal/dataset"
)

// CSVFile reads a comma-separated file with a header row.
func CSVFile(name, path string, opts Options) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening csv file")
	}
	defer f.Close()

	ds, err := CSV(name, f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return ds, nil
}

// CSV reads comma-separated data with a header row. The csv reader
// enforces a rectangular record shape; the header names the columns
// and types are inferred from the data.
func CSV(name string, r io.Reader, opts Options) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("csv input is empty, expected a header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading csv header")
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv records")
	}

	return buildDataset(name, header, records, opts)
}
