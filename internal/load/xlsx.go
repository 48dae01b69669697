package load

import (
	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"

	"github.com/tabuladb/tabula/internal/dataset"
)

// XLSX reads one worksheet of a spreadsheet file. The first row is the
// header; trailing cells a row omits are read as null.
func XLSX(name, path string, opts Options) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening xlsx file")
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(1)
		if sheet == "" {
			return nil, errors.Errorf("%s has no sheets", path)
		}
	} else if f.GetSheetIndex(sheet) == 0 {
		return nil, errors.Errorf("sheet %q not found in %s", sheet, path)
	}

	rows := f.GetRows(sheet)
	if len(rows) == 0 {
		return nil, errors.Errorf("sheet %q is empty, expected a header row", sheet)
	}

	header := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make([]string, len(header))
		copy(record, row)
		records = append(records, record)
	}

	ds, err := buildDataset(name, header, records, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return ds, nil
}
