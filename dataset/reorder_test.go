package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var salesCSV = []byte(`product,quantity
Omega-3,12
Omega-3,15
Omega-3,11
Omega-3,14
Omega-3,13
Creatine,16
Magnesium,7
`)

func TestReorderPoints(t *testing.T) {
	inventory, err := ParseCSV([]byte("product,stock\nOmega-3,145\nCreatine,380\nMagnesium,610\nZinc,90\n"))
	require.NoError(t, err)
	sales, err := ParseCSV(salesCSV)
	require.NoError(t, err)

	out, err := ReorderPolicy{}.Apply(inventory, sales)
	require.NoError(t, err)

	assert.Equal(t, []string{"product", "stock", "reorder_point"}, out.Fields())
	// Omega-3: mean 13 × 14 days + √2.5 × 1.5 × √14 = 190.87, rounded up.
	// One sales day means no safety stock; no sales at all means zero.
	assert.Equal(t, []float64{191, 224, 98, 0}, numbers(out.Column("reorder_point")))
	assert.Equal(t, []string{"product", "stock"}, inventory.Fields(), "inventory untouched")
}

func TestReorderPolicySettings(t *testing.T) {
	inventory, err := New([]string{"sku"}, []Record{{"sku": String("Omega-3")}})
	require.NoError(t, err)
	sales, err := New([]string{"sku", "units"}, []Record{
		{"sku": String("Omega-3"), "units": Number(10)},
		{"sku": String("Omega-3"), "units": Number(10)},
	})
	require.NoError(t, err)

	out, err := ReorderPolicy{LeadTimeDays: 7, Product: "sku", Quantity: "units", Field: "rop"}.Apply(inventory, sales)
	require.NoError(t, err)
	assert.Equal(t, []float64{70}, numbers(out.Column("rop")))
}

func TestReorderPolicyErrors(t *testing.T) {
	inventory, err := New([]string{"product", "reorder_point"}, []Record{
		{"product": String("Omega-3"), "reorder_point": Number(200)},
	})
	require.NoError(t, err)
	sales, err := ParseCSV([]byte("product,quantity\nOmega-3,n/a\n"))
	require.NoError(t, err)
	plain, err := New([]string{"product"}, []Record{{"product": String("Omega-3")}})
	require.NoError(t, err)

	cases := map[string]struct {
		policy     ReorderPolicy
		inv, sales *Dataset
	}{
		"existing field":   {ReorderPolicy{}, inventory, sales},
		"missing product":  {ReorderPolicy{Product: "sku"}, plain, sales},
		"missing quantity": {ReorderPolicy{Quantity: "units"}, plain, sales},
		"text quantity":    {ReorderPolicy{}, plain, sales},
	}
	for name, c := range cases {
		_, err := c.policy.Apply(c.inv, c.sales)
		var fe *FieldError
		assert.ErrorAs(t, err, &fe, name)
	}
}
