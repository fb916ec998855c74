package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/spektr-org/chartkit/dashboard"
	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// HTML — Interactive page via go-echarts
// ============================================================================
// One echarts instance per panel, laid out as a flex page. A panel that failed
// to resolve becomes an empty chart whose subtitle carries the panel message.
// ============================================================================

// HTML writes a self-contained page with one chart per panel.
func HTML(w io.Writer, title string, panels []dashboard.Panel, opts ...Option) error {
	cfg := applyOptions(config{Width: 600, Height: 400}, opts)

	page := components.NewPage()
	page.PageTitle = title
	page.SetLayout(components.PageFlexLayout)

	for _, p := range panels {
		if !p.OK() {
			page.AddCharts(messageChart(p, cfg))
			continue
		}
		c, err := echart(p.Plan, cfg)
		if err != nil {
			return fmt.Errorf("panel %q: %w", p.ID, err)
		}
		page.AddCharts(c)
	}

	return page.Render(w)
}

// HTMLPlan writes a page holding a single plan.
func HTMLPlan(w io.Writer, plan *engine.RenderPlan, opts ...Option) error {
	return HTML(w, plan.Title, []dashboard.Panel{{ID: "chart", Title: plan.Title, Plan: plan}}, opts...)
}

func echart(plan *engine.RenderPlan, cfg *config) (components.Charter, error) {
	switch plan.Kind {
	case engine.KindLine:
		return echartLine(plan, cfg), nil
	case engine.KindBar:
		return echartBar(plan, cfg), nil
	case engine.KindPie:
		return echartPie(plan, cfg), nil
	}
	return nil, fmt.Errorf("unsupported chart kind %q", plan.Kind)
}

func globalOpts(plan *engine.RenderPlan, cfg *config) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", cfg.Width),
			Height: fmt.Sprintf("%dpx", cfg.Height),
			Theme:  cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{Title: plan.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(plan.ShowLegend), Top: "bottom"}),
	}
}

func axisOpts(plan *engine.RenderPlan) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: plan.XAxis}),
		charts.WithYAxisOpts(opts.YAxis{Name: plan.YAxis, SplitLine: &opts.SplitLine{Show: opts.Bool(plan.ShowGrid)}}),
	}
}

func echartLine(plan *engine.RenderPlan, cfg *config) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOpts(plan, cfg), axisOpts(plan)...)...)
	if plan.Secondary() {
		line.ExtendYAxis(opts.YAxis{Name: plan.YAxis2})
	}
	line.SetXAxis(plan.CategoryLabels)

	for _, s := range plan.Series {
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Floats() {
			data[i] = opts.LineData{Value: v}
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		}
		if s.Role == engine.RoleSecondary {
			seriesOpts = append(seriesOpts, charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))
		}
		line.AddSeries(s.DisplayName, data, seriesOpts...)
	}
	return line
}

func echartBar(plan *engine.RenderPlan, cfg *config) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(plan, cfg), axisOpts(plan)...)...)
	if plan.Secondary() {
		bar.ExtendYAxis(opts.YAxis{Name: plan.YAxis2})
	}
	bar.SetXAxis(plan.CategoryLabels)

	for _, s := range plan.Series {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Floats() {
			data[i] = opts.BarData{Value: v}
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		}
		if s.Role == engine.RoleSecondary {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}))
		}
		bar.AddSeries(s.DisplayName, data, seriesOpts...)
	}
	return bar
}

func echartPie(plan *engine.RenderPlan, cfg *config) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(append(globalOpts(plan, cfg),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)...)

	data := make([]opts.PieData, len(plan.Slices))
	for i, s := range plan.Slices {
		v, _ := s.Value.Float()
		data[i] = opts.PieData{
			Name:      s.Label,
			Value:     v,
			ItemStyle: &opts.ItemStyle{Color: s.Color},
		}
	}

	name := ""
	if len(plan.Series) > 0 {
		name = plan.Series[0].DisplayName
	}
	pie.AddSeries(name, data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"0%", "70%"}}),
	)
	return pie
}

// messageChart stands in for a panel that could not be resolved.
func messageChart(p dashboard.Panel, cfg *config) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", cfg.Width),
			Height: fmt.Sprintf("%dpx", cfg.Height),
			Theme:  cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{Title: p.Title, Subtitle: p.Message}),
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(false)}),
	)
	return bar
}
