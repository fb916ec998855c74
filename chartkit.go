// Package chartkit turns declarative chart specs into render-ready plans.
// Recharts-style dashboards for any dataset.
//
// Usage:
//
//	import "github.com/spektr-org/chartkit/engine"
//
//	plan, err := engine.Resolve(ds, engine.ChartSpec{
//	    Kind:    engine.KindPie,
//	    Series:  []engine.SeriesSpec{{Field: "name", Role: engine.RoleCategory}, {Field: "value", Role: engine.RolePrimary}},
//	    Palette: engine.DefaultPalette,
//	})
//
// The engine takes a Dataset (named fields, records of string/number values)
// and a ChartSpec, and returns a RenderPlan: resolved series, category labels,
// colors and pie slice labels, ready for any renderer.
//
// Dashboards of many charts are loaded and resolved by the dashboard package;
// the render package draws plans as HTML, PNG/SVG or terminal text.
// The engine never touches the filesystem or the network; resolution is pure.
package chartkit
