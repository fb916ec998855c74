package engine

import (
	"fmt"

	"github.com/spektr-org/chartkit/dataset"
)

// ============================================================================
// RESOLVER — Produces a RenderPlan from a Dataset + ChartSpec
// ============================================================================
// Pipeline:
//   1. Config checks (palette, kind, dataset)
//   2. Every referenced field exists
//   3. Exactly one category series; pie has exactly one value series
//   4. Value fields are numeric in every record
//   5. Copy category labels and value columns in record order
//   6. Assign colors by palette index, wrapping around
//
// Resolve is a pure function: no I/O, no logging, no shared state. On error
// it returns a nil plan; there is no partial result.
// ============================================================================

// Resolve validates spec against ds and returns a render-ready plan.
func Resolve(ds *dataset.Dataset, spec ChartSpec) (*RenderPlan, error) {
	if len(spec.Palette) == 0 {
		return nil, &ConfigError{Property: "palette", Reason: "must contain at least one color"}
	}
	if !spec.Kind.Valid() {
		return nil, &ConfigError{Property: "kind", Reason: fmt.Sprintf("unknown chart kind %q", spec.Kind)}
	}
	if ds == nil {
		return nil, &ConfigError{Property: "dataset", Reason: "no dataset supplied"}
	}

	for i, s := range spec.Series {
		if !ds.Has(s.Field) {
			return nil, &UnknownFieldError{Field: s.Field, Series: i}
		}
	}

	var category *SeriesSpec
	var values []SeriesSpec
	categories := 0
	for i := range spec.Series {
		s := spec.Series[i]
		switch {
		case s.Role == RoleCategory:
			categories++
			category = &spec.Series[i]
		case s.Role.IsValue():
			values = append(values, s)
		default:
			return nil, &SchemaError{Kind: spec.Kind, Field: s.Field, Reason: fmt.Sprintf("has unknown role %q", s.Role)}
		}
	}
	if categories != 1 {
		return nil, &SchemaError{Kind: spec.Kind, Reason: fmt.Sprintf("needs exactly one category series, got %d", categories)}
	}
	if spec.Kind == KindPie && len(values) != 1 {
		return nil, &SchemaError{Kind: spec.Kind, Reason: fmt.Sprintf("needs exactly one value series, got %d", len(values))}
	}

	for _, s := range values {
		if ok, at := ds.IsNumeric(s.Field); !ok {
			return nil, &SchemaError{Kind: spec.Kind, Field: s.Field, Reason: fmt.Sprintf("is not numeric (record %d)", at)}
		}
	}

	plan := &RenderPlan{
		Kind:           spec.Kind,
		Title:          spec.Title,
		XAxis:          displayName(*category),
		CategoryLabels: categoryLabels(ds, category.Field),
		ShowLegend:     true,
		ShowGrid:       spec.Kind != KindPie,
	}

	colors := assignColors(spec.Palette, len(values))
	plan.Series = make([]ResolvedSeries, len(values))
	for i, s := range values {
		plan.Series[i] = ResolvedSeries{
			DisplayName: displayName(s),
			Field:       s.Field,
			Role:        s.Role,
			Values:      ds.Column(s.Field),
			Color:       colors[i],
		}
	}
	plan.YAxis, plan.YAxis2 = axisTitles(plan.Series)

	if spec.Kind == KindPie {
		plan.Slices = buildSlices(plan.CategoryLabels, plan.Series[0].Values, spec.Palette)
		plan.XAxis, plan.YAxis, plan.YAxis2 = "", "", ""
	}

	return plan, nil
}

// SliceLabel formats a pie label: "{category} ({value}%)". The value is
// printed verbatim, never rounded or normalized.
func SliceLabel(category string, value dataset.Value) string {
	return category + " (" + value.String() + "%)"
}

func buildSlices(labels []string, values []dataset.Value, palette []string) []Slice {
	slices := make([]Slice, len(labels))
	for i, label := range labels {
		slices[i] = Slice{
			Label:    SliceLabel(label, values[i]),
			Category: label,
			Value:    values[i],
			Color:    ColorAt(palette, i),
		}
	}
	return slices
}

func categoryLabels(ds *dataset.Dataset, field string) []string {
	col := ds.Column(field)
	labels := make([]string, len(col))
	for i, v := range col {
		labels[i] = v.String()
	}
	return labels
}

// axisTitles names each value axis after its series when exactly one series
// uses it.
func axisTitles(series []ResolvedSeries) (primary, secondary string) {
	var p, s []string
	for _, rs := range series {
		if rs.Role == RoleSecondary {
			s = append(s, rs.DisplayName)
		} else {
			p = append(p, rs.DisplayName)
		}
	}
	if len(p) == 1 {
		primary = p[0]
	}
	if len(s) == 1 {
		secondary = s[0]
	}
	return primary, secondary
}

func displayName(s SeriesSpec) string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return dataset.DisplayName(s.Field)
}
