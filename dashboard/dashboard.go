package dashboard

import (
	"github.com/spektr-org/chartkit/dataset"
	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// DASHBOARD — A screen of charts described as data
// ============================================================================
// A Document names its datasets once and lets every chart refer to them by
// key. Building a Document resolves each chart into a Panel. A panel whose
// chart cannot be resolved keeps an explanatory message instead of a plan, so
// one bad chart never takes the rest of the screen down with it.
// ============================================================================

// Document is the parsed dashboard file.
type Document struct {
	Title    string                   `json:"title" yaml:"title"`
	Datasets map[string]DatasetSource `json:"datasets" yaml:"datasets"`
	Charts   []Chart                  `json:"charts" yaml:"charts"`

	// baseDir resolves relative DatasetSource.File paths.
	baseDir string
}

// DatasetSource is either inline records or a file reference.
type DatasetSource struct {
	dataset.Source `yaml:",inline"`

	// File is a CSV, JSON or YAML file, relative to the dashboard file.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	// SnakeCase normalizes CSV headers ("Stock Level" → "stock_level").
	SnakeCase bool `json:"snakeCase,omitempty" yaml:"snakeCase,omitempty"`
	// Reorder appends reorder points derived from a sales dataset.
	Reorder *ReorderSource `json:"reorder,omitempty" yaml:"reorder,omitempty"`
}

// ReorderSource names the sales history a reorder policy reads.
type ReorderSource struct {
	Sales                 string `json:"sales" yaml:"sales"`
	dataset.ReorderPolicy `yaml:",inline"`
}

// Chart is one panel of the dashboard.
type Chart struct {
	ID               string `json:"id" yaml:"id"`
	Dataset          string `json:"dataset" yaml:"dataset"`
	engine.ChartSpec `yaml:",inline"`

	// Query reshapes the dataset for this chart only.
	Query *dataset.Query `json:"query,omitempty" yaml:"query,omitempty"`
}

// Panel is a resolved chart: either Plan is set, or Err and Message explain
// why it could not be drawn.
type Panel struct {
	ID      string             `json:"id" yaml:"id"`
	Title   string             `json:"title" yaml:"title"`
	Dataset string             `json:"dataset" yaml:"dataset"`
	Plan    *engine.RenderPlan `json:"plan,omitempty" yaml:"plan,omitempty"`
	Message string             `json:"message,omitempty" yaml:"message,omitempty"`
	Err     error              `json:"-" yaml:"-"`
}

// OK reports whether the panel resolved.
func (p Panel) OK() bool { return p.Err == nil && p.Plan != nil }

// Chart returns the chart with the given id.
func (d *Document) Chart(id string) (Chart, bool) {
	for _, c := range d.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}
