// Package load reads delimited and spreadsheet files into datasets.
// Loaders own all file I/O; the dataset and operations packages never
// touch the filesystem.
package load

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tabuladb/tabula/internal/dataset"
)

// DefaultNullMarkers are the cell spellings read as null.
var DefaultNullMarkers = []string{"", "NA", "NULL"}

// Options adjusts how a file is read.
type Options struct {
	// Sheet selects the worksheet of a spreadsheet file. Empty means
	// the first sheet.
	Sheet string

	// NullMarkers override DefaultNullMarkers when non-nil.
	NullMarkers []string
}

func (o Options) isNull(cell string) bool {
	markers := o.NullMarkers
	if markers == nil {
		markers = DefaultNullMarkers
	}
	for _, m := range markers {
		if cell == m {
			return true
		}
	}
	return false
}

// File reads path into a dataset named name, picking the reader from
// the file extension.
func File(name, path string, opts Options) (*dataset.Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return CSVFile(name, path, opts)
	case ".xlsx", ".xlsm":
		return XLSX(name, path, opts)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", ext)
	}
}
