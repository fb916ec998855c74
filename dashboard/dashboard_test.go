package dashboard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// DASHBOARD TESTS
// ============================================================================

func TestSampleBuildsAllPanels(t *testing.T) {
	doc, err := Sample()
	require.NoError(t, err)
	assert.Equal(t, "Blueprint Overview", doc.Title)

	panels, err := Build(context.Background(), doc, WithQuiet())
	require.NoError(t, err)
	require.Len(t, panels, 4)

	ids := []string{"revenue", "categories", "segments", "inventory"}
	kinds := []engine.ChartKind{engine.KindLine, engine.KindPie, engine.KindBar, engine.KindBar}
	for i, p := range panels {
		require.True(t, p.OK(), "panel %s: %v", p.ID, p.Err)
		assert.Equal(t, ids[i], p.ID, "panels keep document order")
		assert.Equal(t, kinds[i], p.Plan.Kind)
		assert.Empty(t, p.Message)
	}

	revenue := panels[0].Plan
	assert.Equal(t, "Product Revenue", revenue.Title)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, revenue.CategoryLabels)
	assert.True(t, revenue.Secondary())

	pie := panels[1].Plan
	require.Len(t, pie.Slices, 4)
	assert.Equal(t, "Essential Supplements (45%)", pie.Slices[0].Label)
	assert.Equal(t, "#FF8042", pie.Slices[3].Color)

	inventory := panels[3].Plan
	require.Len(t, inventory.Series, 2)
	assert.Equal(t, "Reorder Point", inventory.Series[1].DisplayName)
	assert.Equal(t, []float64{341, 233, 163, 191, 107}, inventory.Series[1].Floats(), "derived from the sales history")
	assert.False(t, inventory.Secondary(), "stock and reorder point share one axis")
}

func TestReorderDatasetValidation(t *testing.T) {
	base := `
title: Reorder
datasets:
  stock:
    records: [{product: A, stock: 5}]
    reorder: %s
  sales:
    records: [{product: A, quantity: 2}]
  derived:
    records: [{product: A, quantity: 2}]
    reorder: {sales: sales}
charts:
  - {id: c, dataset: stock, kind: bar, palette: ["#000"], series: [{field: product, role: category}, {field: stock, role: primary}]}
`
	for name, reorder := range map[string]string{
		"no sales":      `{}`,
		"undefined":     `{sales: nope}`,
		"chained":       `{sales: derived}`,
		"unknown field": `{sales: sales, leadTime: 3}`,
	} {
		_, err := Parse([]byte(fmt.Sprintf(base, reorder)), "")
		assert.Error(t, err, name)
	}

	doc, err := Parse([]byte(fmt.Sprintf(base, `{sales: sales, leadTimeDays: 10, quantity: quantity}`)), "")
	require.NoError(t, err)
	ds, err := doc.loadDataset("stock")
	require.NoError(t, err)
	assert.Equal(t, []string{"product", "stock", "reorder_point"}, ds.Fields())
	v, _ := ds.Value(0, "reorder_point").Float()
	assert.Equal(t, 20.0, v)
}

func TestBuildReportsPanelErrors(t *testing.T) {
	doc, err := Parse([]byte(`
title: Broken
datasets:
  sales:
    records:
      - {month: Jan, revenue: 10}
charts:
  - id: good
    dataset: sales
    kind: bar
    palette: ["#000"]
    series:
      - {field: month, role: category}
      - {field: revenue, role: primary}
  - id: typo
    dataset: sales
    kind: bar
    palette: ["#000"]
    series:
      - {field: month, role: category}
      - {field: revenu, role: primary}
  - id: nocolor
    dataset: sales
    kind: line
    series:
      - {field: month, role: category}
  - id: orphan
    dataset: missing
    kind: bar
    palette: ["#000"]
    series:
      - {field: month, role: category}
  - id: twopie
    dataset: sales
    kind: pie
    palette: ["#000"]
    series:
      - {field: month, role: category}
`), "")
	require.NoError(t, err)

	panels, err := Build(context.Background(), doc, WithQuiet(), WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, panels, 5)

	assert.True(t, panels[0].OK())
	assert.Equal(t, "good", panels[0].Title, "title falls back to id")

	assert.False(t, panels[1].OK())
	assert.ErrorIs(t, panels[1].Err, engine.ErrUnknownField)
	assert.Equal(t, `This chart uses the field "revenu", which dataset "sales" does not have.`, panels[1].Message)

	assert.ErrorIs(t, panels[2].Err, engine.ErrConfig)
	assert.Contains(t, panels[2].Message, "palette")

	var missing *MissingDatasetError
	assert.ErrorAs(t, panels[3].Err, &missing)
	assert.Contains(t, panels[3].Message, `"missing"`)

	assert.ErrorIs(t, panels[4].Err, engine.ErrSchema)
	assert.Contains(t, panels[4].Message, "pie chart")
	assert.Nil(t, panels[4].Plan)
}

func TestChartKindDecodesCaseInsensitively(t *testing.T) {
	doc, err := Parse([]byte(`
title: Kinds
datasets:
  d: {records: [{a: x, b: 1}]}
charts:
  - id: upper
    dataset: d
    kind: Line
    palette: ["#000"]
    series: [{field: a, role: category}, {field: b, role: Primary}]
  - id: unknown
    dataset: d
    kind: Sankey
    palette: ["#000"]
    series: [{field: a, role: category}, {field: b, role: primary}]
`), "")
	require.NoError(t, err, "an unknown kind fails its panel, not the document")

	panels, err := Build(context.Background(), doc, WithQuiet())
	require.NoError(t, err)
	require.True(t, panels[0].OK(), "%v", panels[0].Err)
	assert.Equal(t, engine.KindLine, panels[0].Plan.Kind)

	assert.ErrorIs(t, panels[1].Err, engine.ErrConfig)
	assert.Contains(t, panels[1].Message, "Sankey")
}

func TestBuildOnlySelectedCharts(t *testing.T) {
	doc, err := Sample()
	require.NoError(t, err)

	panels, err := Build(context.Background(), doc, WithQuiet(), WithCharts("inventory", "revenue"))
	require.NoError(t, err)
	require.Len(t, panels, 2)
	assert.Equal(t, "revenue", panels[0].ID)
	assert.Equal(t, "inventory", panels[1].ID)

	_, err = Build(context.Background(), doc, WithQuiet(), WithCharts("nope"))
	assert.Error(t, err)
}

func TestBuildCancelled(t *testing.T) {
	doc, err := Sample()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Build(ctx, doc, WithQuiet())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFileWithCSVDataset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory.csv"), []byte(
		"Product,Stock Level\nWhey Protein,1250\nCreatine,380\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dash.yaml"), []byte(`
title: Stock
datasets:
  inventory:
    file: inventory.csv
    snakeCase: true
charts:
  - id: stock
    title: Stock Levels
    dataset: inventory
    kind: bar
    palette: ["#82ca9d"]
    series:
      - {field: product, role: category}
      - {field: stock_level, role: primary}
`), 0o644))

	doc, err := LoadFile(filepath.Join(dir, "dash.yaml"))
	require.NoError(t, err)

	panels, err := Build(context.Background(), doc, WithQuiet())
	require.NoError(t, err)
	require.True(t, panels[0].OK(), panels[0].Message)
	assert.Equal(t, []string{"Whey Protein", "Creatine"}, panels[0].Plan.CategoryLabels)
	assert.Equal(t, "Stock Level", panels[0].Plan.Series[0].DisplayName)
}

func TestMissingDatasetFileIsPanelError(t *testing.T) {
	doc, err := Parse([]byte(`
datasets:
  gone: {file: nowhere.csv}
charts:
  - id: a
    dataset: gone
    kind: bar
    palette: ["#000"]
    series: [{field: x, role: category}]
`), t.TempDir())
	require.NoError(t, err)

	panels, err := Build(context.Background(), doc, WithQuiet())
	require.NoError(t, err)
	assert.False(t, panels[0].OK())
	assert.Contains(t, panels[0].Message, `Dataset "gone" could not be loaded`)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := map[string]string{
		"no charts":     `title: empty`,
		"missing id":    `charts: [{dataset: a, kind: bar}]`,
		"duplicate id":  `charts: [{id: a}, {id: a}]`,
		"unknown key":   `charts: [{id: a, colour: red}]`,
		"file+records":  "datasets: {a: {file: a.csv, records: [{x: 1}]}}\ncharts: [{id: a}]",
		"bad role":      `charts: [{id: a, series: [{field: x, role: diagonal}]}]`,
		"non-scalar":    "datasets: {a: {records: [{x: [1, 2]}]}}\ncharts: [{id: a}]",
		"not a mapping": `- just a list`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), "")
			assert.Error(t, err)
		})
	}
}

func TestSampleYAMLIsACopy(t *testing.T) {
	a := SampleYAML()
	a[0] = '#'
	assert.NotEqual(t, a[0], SampleYAML()[0])
}

func TestBuildAppliesQuery(t *testing.T) {
	doc, err := Parse([]byte(`
title: Orders
datasets:
  orders:
    fields: [region, product, units]
    records:
      - {region: North, product: Whey, units: 10}
      - {region: South, product: Creatine, units: 4}
      - {region: North, product: Creatine, units: 6}
      - {region: East, product: Whey, units: 2}
charts:
  - id: by-product
    dataset: orders
    kind: pie
    palette: ["#0088FE", "#00C49F"]
    query: {groupBy: product, sort: units_desc}
    series: [{field: product, role: category}, {field: units, role: primary}]
  - id: north
    dataset: orders
    kind: bar
    palette: ["#000"]
    query: {filter: {region: [north]}}
    series: [{field: product, role: category}, {field: units, role: primary}]
  - id: bad-query
    dataset: orders
    kind: bar
    palette: ["#000"]
    query: {groupBy: country}
    series: [{field: product, role: category}, {field: units, role: primary}]
`), "")
	require.NoError(t, err)

	panels, err := Build(context.Background(), doc, WithQuiet())
	require.NoError(t, err)
	require.Len(t, panels, 3)

	require.True(t, panels[0].OK(), "%v", panels[0].Err)
	assert.Equal(t, []string{"Whey", "Creatine"}, panels[0].Plan.CategoryLabels)
	assert.Equal(t, "Whey (12%)", panels[0].Plan.Slices[0].Label)

	require.True(t, panels[1].OK(), "%v", panels[1].Err)
	assert.Equal(t, []string{"Whey", "Creatine"}, panels[1].Plan.CategoryLabels)

	assert.False(t, panels[2].OK())
	assert.Contains(t, panels[2].Message, "country")

	ds, err := doc.loadDataset("orders")
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len(), "shared dataset is not modified by a chart's query")
}
