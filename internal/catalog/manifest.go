package catalog

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tabuladb/tabula/internal/load"
)

// ManifestEntry names one tabular file to mount at startup.
type ManifestEntry struct {
	Name  string `yaml:"name"`
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet,omitempty"`
}

// Manifest lists the datasets a data directory provides.
type Manifest struct {
	Datasets []ManifestEntry `yaml:"datasets"`
}

// LoadManifest reads and validates a datasets.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}

	seen := make(map[string]bool, len(m.Datasets))
	for i, entry := range m.Datasets {
		if entry.Name == "" {
			return nil, errors.Errorf("manifest %s: entry %d has no name", path, i+1)
		}
		if entry.Path == "" {
			return nil, errors.Errorf("manifest %s: dataset %q has no path", path, entry.Name)
		}
		if seen[entry.Name] {
			return nil, errors.Errorf("manifest %s: dataset %q listed twice", path, entry.Name)
		}
		seen[entry.Name] = true
	}
	return &m, nil
}

// Mount loads every manifest entry into the registry. Relative entry
// paths resolve against baseDir.
func (r *Registry) Mount(m *Manifest, baseDir string) error {
	for _, entry := range m.Datasets {
		path := entry.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		ds, err := load.File(entry.Name, path, load.Options{Sheet: entry.Sheet})
		if err != nil {
			return errors.Wrapf(err, "mounting dataset %q", entry.Name)
		}
		if err := r.Register(entry.Name, ds); err != nil {
			return err
		}

		slog.Info("mounted dataset",
			"name", entry.Name,
			"path", path,
			"rows", ds.NumRows(),
			"columns", ds.Schema().Len())
	}
	return nil
}
