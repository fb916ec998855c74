package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/chartkit/dashboard"
	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// TERMINAL — Text rendering via ntcharts + lipgloss
// ============================================================================
// Each panel is a rounded box: title, a legend with a color swatch per series
// (or slice), then one horizontal bar chart per value series. Pie plans
// draw one bar per slice. Line plans are drawn as bars too; the category order
// on the vertical axis keeps the reading order of the x-axis.
// ============================================================================

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	messageStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#EF4444"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Terminal writes every panel as a boxed text chart.
func Terminal(w io.Writer, title string, panels []dashboard.Panel, opts ...Option) error {
	cfg := applyOptions(config{Width: 72}, opts)

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Underline(true).Render(title))
		b.WriteString("\n\n")
	}
	for _, p := range panels {
		b.WriteString(terminalPanel(p, cfg))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// TerminalPlan writes a single plan.
func TerminalPlan(w io.Writer, plan *engine.RenderPlan, opts ...Option) error {
	return Terminal(w, "", []dashboard.Panel{{ID: "chart", Title: plan.Title, Plan: plan}}, opts...)
}

func terminalPanel(p dashboard.Panel, cfg *config) string {
	lines := []string{titleStyle.Render(p.Title)}

	switch {
	case !p.OK():
		lines = append(lines, messageStyle.Render(p.Message))
	case planIsEmpty(p.Plan):
		lines = append(lines, mutedStyle.Render("(no values)"))
	case p.Plan.Kind == engine.KindPie:
		lines = append(lines, legend(sliceEntries(p.Plan.Slices)), pieBars(p.Plan, cfg))
	default:
		lines = append(lines, legend(seriesEntries(p.Plan.Series)))
		for _, s := range p.Plan.Series {
			lines = append(lines, mutedStyle.Render(axisCaption(p.Plan, s)), seriesBars(p.Plan, s, cfg))
		}
	}

	return boxStyle.Width(cfg.Width).Render(strings.Join(lines, "\n"))
}

type legendEntry struct {
	name  string
	color string
}

func seriesEntries(series []engine.ResolvedSeries) []legendEntry {
	out := make([]legendEntry, len(series))
	for i, s := range series {
		out[i] = legendEntry{name: s.DisplayName, color: s.Color}
	}
	return out
}

func sliceEntries(slices []engine.Slice) []legendEntry {
	out := make([]legendEntry, len(slices))
	for i, s := range slices {
		out[i] = legendEntry{name: s.Label, color: s.Color}
	}
	return out
}

func legend(entries []legendEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = swatch(e.color).Render("■") + " " + e.name
	}
	return strings.Join(parts, "\n")
}

func axisCaption(plan *engine.RenderPlan, s engine.ResolvedSeries) string {
	axis := plan.YAxis
	if s.Role == engine.RoleSecondary {
		axis = plan.YAxis2
	}
	if axis == "" || axis == s.DisplayName {
		return fmt.Sprintf("%s by %s", s.DisplayName, plan.XAxis)
	}
	return fmt.Sprintf("%s (%s) by %s", s.DisplayName, axis, plan.XAxis)
}

func seriesBars(plan *engine.RenderPlan, s engine.ResolvedSeries, cfg *config) string {
	style := swatch(s.Color)
	data := make([]barchart.BarData, len(plan.CategoryLabels))
	for i, v := range s.Floats() {
		data[i] = barchart.BarData{
			Label:  fmt.Sprintf("%s (%s)", plan.CategoryLabels[i], s.Values[i].String()),
			Values: []barchart.BarValue{{Name: s.DisplayName, Value: v, Style: style}},
		}
	}
	return drawBars(data, cfg)
}

func pieBars(plan *engine.RenderPlan, cfg *config) string {
	data := make([]barchart.BarData, len(plan.Slices))
	for i, s := range plan.Slices {
		v, _ := s.Value.Float()
		data[i] = barchart.BarData{
			Label:  s.Label,
			Values: []barchart.BarValue{{Name: s.Category, Value: v, Style: swatch(s.Color)}},
		}
	}
	return drawBars(data, cfg)
}

func drawBars(data []barchart.BarData, cfg *config) string {
	height := cfg.Height
	if height <= 0 {
		height = len(data) * 2
	}
	bc := barchart.New(cfg.Width-4, height, barchart.WithDataSet(data), barchart.WithHorizontalBars())
	bc.Draw()
	return bc.View()
}

func swatch(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
