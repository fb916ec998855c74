package main

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/chartkit/dashboard"
	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// OUTPUT — Plan encoders for `chartkit resolve`
// ============================================================================

type output struct {
	Title  string            `json:"title" yaml:"title"`
	Panels []dashboard.Panel `json:"panels" yaml:"panels"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var encoders = map[string]func(io.Writer, output) error{
	"json":   writeJSON(false),
	"pretty": writeJSON(true),
	"yaml":   writeYAML,
	"csv":    writeCSV,
	"dump":   writeDump,
}

func writeJSON(pretty bool) func(io.Writer, output) error {
	return func(w io.Writer, out output) error {
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		return nil
	}
}

func writeYAML(w io.Writer, out output) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return enc.Close()
}

func writeDump(w io.Writer, out output) error {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	cfg.Fdump(w, out)
	return nil
}

// writeCSV emits one block per panel: a title row, then a header row and one
// row per category with a column per series. Sheets and Excel open it as is.
func writeCSV(w io.Writer, out output) error {
	cw := csv.NewWriter(w)
	for i, p := range out.Panels {
		if i > 0 {
			cw.Write(nil)
		}
		cw.Write([]string{p.Title})
		if !p.OK() {
			cw.Write([]string{"Error", p.Message})
			continue
		}
		writePlanCSV(cw, p.Plan)
	}
	cw.Flush()
	return cw.Error()
}

func writePlanCSV(cw *csv.Writer, plan *engine.RenderPlan) {
	xLabel := plan.XAxis
	if xLabel == "" {
		xLabel = "Label"
	}

	if plan.Kind == engine.KindPie {
		cw.Write([]string{xLabel, plan.Series[0].DisplayName, "Label"})
		for _, s := range plan.Slices {
			cw.Write([]string{s.Category, s.Value.String(), s.Label})
		}
		return
	}

	headers := []string{xLabel}
	for _, s := range plan.Series {
		headers = append(headers, s.DisplayName)
	}
	cw.Write(headers)

	for i, label := range plan.CategoryLabels {
		row := []string{label}
		for _, s := range plan.Series {
			row = append(row, s.Values[i].String())
		}
		cw.Write(row)
	}
}
