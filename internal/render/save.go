package render

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/tabuladb/tabula/internal/dataset"
)

// Save writes the dataset to path in the format its extension names:
// .csv, .json or .html.
func Save(ds *dataset.Dataset, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".json", ".html":
	default:
		return errors.Errorf("unsupported output type %q (want .csv, .json or .html)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}

	switch ext {
	case ".csv":
		err = CSV(f, ds)
	case ".json":
		err = JSON(f, ds)
	case ".html":
		err = HTML(f, ds, HTMLOptions{Striped: true, Hover: true})
	}
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}

	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing output file")
	}

	slog.Info("saved dataset", "dataset", ds.Name(), "path", path, "rows", ds.NumRows())
	return nil
}
