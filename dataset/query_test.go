package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordersDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := New([]string{"region", "product", "units", "revenue"}, []Record{
		{"region": String("North"), "product": String("Whey"), "units": Number(10), "revenue": Number(300)},
		{"region": String("South"), "product": String("Creatine"), "units": Number(4), "revenue": Number(80)},
		{"region": String("North"), "product": String("Creatine"), "units": Number(6), "revenue": Number(120)},
		{"region": String("East"), "product": String("Whey"), "units": Number(2), "revenue": Number(60)},
		{"region": String("south"), "product": String("Omega-3"), "units": Number(5), "revenue": Number(75)},
	})
	require.NoError(t, err)
	return ds
}

func TestQueryZeroValueIsIdentity(t *testing.T) {
	ds := ordersDataset(t)
	out, err := Query{}.Apply(ds)
	require.NoError(t, err)
	assert.Same(t, ds, out)
}

func TestQueryFilter(t *testing.T) {
	ds := ordersDataset(t)

	out, err := Query{Filter: map[string][]string{"region": {"SOUTH"}}}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"Creatine", "Omega-3"}, texts(out.Column("product")), "case-insensitive, order kept")

	out, err = Query{Filter: map[string][]string{"region": {"north", "east"}, "product": {"whey"}}}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "East"}, texts(out.Column("region")))

	out, err = Query{Filter: map[string][]string{"units": {"6"}}}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len(), "numbers match on their formatted value")

	assert.Equal(t, 5, ds.Len(), "input untouched")
}

func TestQueryGroupBy(t *testing.T) {
	ds := ordersDataset(t)

	out, err := Query{GroupBy: "product"}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"product", "units", "revenue"}, out.Fields(), "non-numeric fields dropped")
	assert.Equal(t, []string{"Whey", "Creatine", "Omega-3"}, texts(out.Column("product")), "first-seen order")
	assert.Equal(t, []float64{12, 10, 5}, numbers(out.Column("units")))
	assert.Equal(t, []float64{360, 200, 75}, numbers(out.Column("revenue")))

	out, err = Query{GroupBy: "product", Aggregate: AggAvg}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 5, 5}, numbers(out.Column("units")))

	out, err = Query{GroupBy: "product", Aggregate: AggMax}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 6, 5}, numbers(out.Column("units")))

	out, err = Query{GroupBy: "product", Aggregate: AggMin}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 5}, numbers(out.Column("units")))

	out, err = Query{GroupBy: "region", Aggregate: AggCount}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"region", CountField}, out.Fields())
	assert.Equal(t, []string{"North", "South", "East", "south"}, texts(out.Column("region")))
	assert.Equal(t, []float64{2, 1, 1, 1}, numbers(out.Column(CountField)))
}

func TestQueryCountOnCountKey(t *testing.T) {
	ds, err := New([]string{"count", "v"}, []Record{
		{"count": String("a"), "v": Number(1)},
		{"count": String("b"), "v": Number(2)},
	})
	require.NoError(t, err)

	_, err = Query{GroupBy: "count", Aggregate: AggCount}.Apply(ds)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "count", fe.Field)

	out, err := Query{GroupBy: "count"}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, texts(out.Column("count")), "sum keeps the key")
}

func TestQuerySortAndLimit(t *testing.T) {
	ds := ordersDataset(t)

	out, err := Query{GroupBy: "product", Sort: "revenue_desc", Limit: 2}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"Whey", "Creatine"}, texts(out.Column("product")))

	out, err = Query{Sort: "units"}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 5, 6, 10}, numbers(out.Column("units")))

	out, err = Query{Sort: "product_asc"}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"Creatine", "Creatine", "Omega-3", "Whey", "Whey"}, texts(out.Column("product")))
	assert.Equal(t, []string{"South", "North", "south", "North", "East"}, texts(out.Column("region")), "stable")
}

func TestQueryErrors(t *testing.T) {
	ds := ordersDataset(t)

	for name, q := range map[string]Query{
		"filter":    {Filter: map[string][]string{"country": {"NZ"}}},
		"groupBy":   {GroupBy: "country"},
		"aggregate": {GroupBy: "product", Aggregate: "median"},
		"sort":      {Sort: "profit_desc"},
		"orphan":    {Aggregate: AggSum},
	} {
		_, err := q.Apply(ds)
		var fe *FieldError
		require.ErrorAs(t, err, &fe, name)
	}
}

func texts(values []Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func numbers(values []Value) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i], _ = v.Float()
	}
	return out
}
