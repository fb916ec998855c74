package render

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// IMAGE — Static PNG/SVG via go-chart
// ============================================================================
// go-chart's BarChart draws a single series, so multi-series bar plans are
// flattened into one bar per (category, series) pair, colored by series.
// ============================================================================

const (
	barWidth   = 40
	barSpacing = 24
)

// Image writes one plan as PNG or SVG.
func Image(w io.Writer, plan *engine.RenderPlan, format Format, opts ...Option) error {
	if planIsEmpty(plan) {
		return ErrEmptyPlan
	}
	cfg := applyOptions(config{Width: 1024, Height: 512}, opts)

	var provider chart.RendererProvider
	switch format {
	case FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("image renderer cannot produce %q", format)
	}

	switch plan.Kind {
	case engine.KindLine:
		c := lineImage(plan, cfg)
		return c.Render(provider, w)
	case engine.KindBar:
		c := barImage(plan, cfg)
		return c.Render(provider, w)
	case engine.KindPie:
		c := pieImage(plan, cfg)
		return c.Render(provider, w)
	}
	return fmt.Errorf("unsupported chart kind %q", plan.Kind)
}

func lineImage(plan *engine.RenderPlan, cfg *config) *chart.Chart {
	n := len(plan.CategoryLabels)
	xs := make([]float64, n)
	ticks := make([]chart.Tick, n)
	for i, label := range plan.CategoryLabels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	var primary, secondary [][]float64
	series := make([]chart.Series, 0, len(plan.Series))
	for _, s := range plan.Series {
		ys := s.Floats()
		axis := chart.YAxisPrimary
		if s.Role == engine.RoleSecondary {
			axis = chart.YAxisSecondary
			secondary = append(secondary, ys)
		} else {
			primary = append(primary, ys)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.DisplayName,
			XValues: xs,
			YValues: ys,
			YAxis:   axis,
			Style: chart.Style{
				StrokeColor: color(s.Color),
				StrokeWidth: 2,
				DotColor:    color(s.Color),
				DotWidth:    3,
			},
		})
	}

	c := &chart.Chart{
		Title:  plan.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  plan.XAxis,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
		},
		YAxis: chart.YAxis{
			Name:  plan.YAxis,
			Range: paddedRange(primary),
		},
		Series: series,
	}
	if len(secondary) > 0 {
		c.YAxisSecondary = chart.YAxis{Name: plan.YAxis2, Range: paddedRange(secondary)}
	}
	c.Elements = []chart.Renderable{chart.Legend(c)}
	return c
}

func barImage(plan *engine.RenderPlan, cfg *config) *chart.BarChart {
	multi := len(plan.Series) > 1
	bars := make([]chart.Value, 0, len(plan.CategoryLabels)*len(plan.Series))
	for i, category := range plan.CategoryLabels {
		for _, s := range plan.Series {
			v, _ := s.Values[i].Float()
			label := category
			if multi {
				label = category + " · " + s.DisplayName
			}
			bars = append(bars, chart.Value{
				Label: label,
				Value: v,
				Style: chart.Style{
					FillColor:   color(s.Color),
					StrokeColor: color(s.Color),
				},
			})
		}
	}

	width := cfg.Width
	if need := len(bars)*(barWidth+barSpacing) + 120; need > width {
		width = need
	}

	return &chart.BarChart{
		Title:  plan.Title,
		Width:  width,
		Height: cfg.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Bars:       bars,
	}
}

func pieImage(plan *engine.RenderPlan, cfg *config) *chart.PieChart {
	values := make([]chart.Value, len(plan.Slices))
	for i, s := range plan.Slices {
		v, _ := s.Value.Float()
		values[i] = chart.Value{
			Label: s.Label,
			Value: v,
			Style: chart.Style{FillColor: color(s.Color)},
		}
	}
	size := cfg.Height
	if cfg.Width < size {
		size = cfg.Width
	}
	return &chart.PieChart{
		Title:  plan.Title,
		Width:  size,
		Height: size,
		Values: values,
	}
}

// paddedRange returns nil (auto range) unless every value is identical, in
// which case go-chart would see a zero-height range and refuse to draw.
func paddedRange(series [][]float64) chart.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ys := range series {
		for _, y := range ys {
			lo = math.Min(lo, y)
			hi = math.Max(hi, y)
		}
	}
	if math.IsInf(lo, 0) || lo != hi {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}

// color maps a palette token onto a go-chart color. Tokens that are not hex
// colors fall back to go-chart's default series colors.
func color(token string) drawing.Color {
	r, g, b, ok := rgb(token)
	if !ok {
		return drawing.Color{}
	}
	return drawing.Color{R: r, G: g, B: b, A: 255}
}
