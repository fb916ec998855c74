package engine

import "github.com/spektr-org/chartkit/dataset"

// ============================================================================
// RENDER PLAN — Render-ready output
// ============================================================================
// Shaped like the ChartConfig frontends already consume: one entry per value
// series, category labels in record order, colors already assigned. Renderers
// read a plan and never go back to the dataset.
// ============================================================================

// RenderPlan is the fully resolved description of one chart.
type RenderPlan struct {
	Kind           ChartKind        `json:"kind" yaml:"kind"`
	Title          string           `json:"title,omitempty" yaml:"title,omitempty"`
	XAxis          string           `json:"xAxis,omitempty" yaml:"xAxis,omitempty"`
	YAxis          string           `json:"yAxis,omitempty" yaml:"yAxis,omitempty"`
	YAxis2         string           `json:"yAxis2,omitempty" yaml:"yAxis2,omitempty"`
	Series         []ResolvedSeries `json:"series" yaml:"series"`
	CategoryLabels []string         `json:"categoryLabels" yaml:"categoryLabels"`
	Slices         []Slice          `json:"slices,omitempty" yaml:"slices,omitempty"`
	ShowLegend     bool             `json:"showLegend" yaml:"showLegend"`
	ShowGrid       bool             `json:"showGrid" yaml:"showGrid"`
}

// ResolvedSeries is one value series with its color.
type ResolvedSeries struct {
	DisplayName string          `json:"name" yaml:"name"`
	Field       string          `json:"field" yaml:"field"`
	Role        Role            `json:"role" yaml:"role"`
	Values      []dataset.Value `json:"values" yaml:"values"`
	Color       string          `json:"color" yaml:"color"`
}

// Floats returns the series values as float64. Values are guaranteed numeric
// by Resolve.
func (s ResolvedSeries) Floats() []float64 {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i], _ = v.Float()
	}
	return out
}

// Slice is one pie wedge.
type Slice struct {
	Label    string        `json:"label" yaml:"label"`       // "Essential Supplements (45%)"
	Category string        `json:"category" yaml:"category"` // "Essential Supplements"
	Value    dataset.Value `json:"value" yaml:"value"`
	Color    string        `json:"color" yaml:"color"`
}

// Secondary reports whether any series is plotted on the secondary axis.
func (p *RenderPlan) Secondary() bool {
	for _, s := range p.Series {
		if s.Role == RoleSecondary {
			return true
		}
	}
	return false
}
