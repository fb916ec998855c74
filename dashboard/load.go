package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/chartkit/dataset"
)

// ErrNoCharts is returned for a document without any chart.
var ErrNoCharts = errors.New("dashboard defines no charts")

// Parse decodes a dashboard document. baseDir resolves relative dataset files;
// pass "" to resolve them against the working directory.
func Parse(data []byte, baseDir string) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	doc := &Document{}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard: %w", err)
	}
	doc.baseDir = baseDir

	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFile reads and parses a dashboard file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// validate checks document structure only. Chart-level problems (unknown
// fields, bad palettes) are left for Build so they surface per panel.
func (d *Document) validate() error {
	if len(d.Charts) == 0 {
		return ErrNoCharts
	}
	seen := make(map[string]bool, len(d.Charts))
	for i, c := range d.Charts {
		if c.ID == "" {
			return fmt.Errorf("chart %d has no id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate chart id %q", c.ID)
		}
		seen[c.ID] = true
	}
	for name, src := range d.Datasets {
		if src.File != "" && len(src.Records) > 0 {
			return fmt.Errorf("dataset %q sets both file and records", name)
		}
		if src.Reorder != nil {
			if err := d.validateReorder(name, src.Reorder); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateReorder allows one level of derivation: the sales dataset must be
// a plain one, which also rules out cycles.
func (d *Document) validateReorder(name string, r *ReorderSource) error {
	sales, ok := d.Datasets[r.Sales]
	switch {
	case r.Sales == "":
		return fmt.Errorf("dataset %q: reorder needs a sales dataset", name)
	case !ok:
		return fmt.Errorf("dataset %q: reorder sales dataset %q is not defined", name, r.Sales)
	case sales.Reorder != nil:
		return fmt.Errorf("dataset %q: reorder sales dataset %q is itself derived", name, r.Sales)
	}
	return nil
}

// loadDataset materializes one named dataset, then its reorder points.
func (d *Document) loadDataset(name string) (*dataset.Dataset, error) {
	src, ok := d.Datasets[name]
	if !ok {
		return nil, &MissingDatasetError{Name: name}
	}
	ds, err := d.loadSource(name, src)
	if err != nil || src.Reorder == nil {
		return ds, err
	}

	sales, err := d.loadSource(src.Reorder.Sales, d.Datasets[src.Reorder.Sales])
	if err != nil {
		return nil, err
	}
	if ds, err = src.Reorder.Apply(ds, sales); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}
	return ds, nil
}

func (d *Document) loadSource(name string, src DatasetSource) (*dataset.Dataset, error) {
	if src.File == "" {
		ds, err := src.Build()
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", name, err)
		}
		return ds, nil
	}

	path := src.File
	if !filepath.IsAbs(path) && d.baseDir != "" {
		path = filepath.Join(d.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", name, err)
	}

	var ds *dataset.Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ds, err = dataset.ParseCSV(data, dataset.CSVOptions{SnakeCase: src.SnakeCase})
	case ".tsv":
		ds, err = dataset.ParseCSV(data, dataset.CSVOptions{Comma: '\t', SnakeCase: src.SnakeCase})
	case ".json":
		ds, err = dataset.ParseJSON(data)
	case ".yaml", ".yml":
		var inline dataset.Source
		if err = yaml.Unmarshal(data, &inline); err == nil {
			ds, err = inline.Build()
		}
	default:
		err = fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("dataset %q (%s): %w", name, src.File, err)
	}
	return ds, nil
}

// MissingDatasetError reports a chart pointing at an undefined dataset.
type MissingDatasetError struct {
	Name string
}

func (e *MissingDatasetError) Error() string {
	return fmt.Sprintf("dataset %q is not defined", e.Name)
}
