package dataset

import (
	"math"
)

// ============================================================================
// REORDER POINTS — Derived from a daily sales history
// ============================================================================
//   safety stock  = stddev(daily demand) × safety factor × √lead time
//   reorder point = mean(daily demand) × lead time + safety stock
//
// The standard deviation is the sample one (n-1); a product with fewer than
// two sales days has no safety stock, and one with no sales has a reorder
// point of zero. Points are rounded up to whole units.
// ============================================================================

// Reorder defaults.
const (
	DefaultLeadTimeDays = 14
	DefaultSafetyFactor = 1.5
)

// ReorderPolicy adds a reorder point per product to an inventory dataset.
// Zero values take the defaults.
type ReorderPolicy struct {
	LeadTimeDays float64 `json:"leadTimeDays,omitempty" yaml:"leadTimeDays,omitempty"`
	SafetyFactor float64 `json:"safetyFactor,omitempty" yaml:"safetyFactor,omitempty"`
	// Product is the key field in both datasets (default "product").
	Product string `json:"product,omitempty" yaml:"product,omitempty"`
	// Quantity is the daily units-sold field of the sales dataset (default "quantity").
	Quantity string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	// Field is the field added to the inventory (default "reorder_point").
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
}

func (p ReorderPolicy) withDefaults() ReorderPolicy {
	if p.LeadTimeDays <= 0 {
		p.LeadTimeDays = DefaultLeadTimeDays
	}
	if p.SafetyFactor <= 0 {
		p.SafetyFactor = DefaultSafetyFactor
	}
	if p.Product == "" {
		p.Product = "product"
	}
	if p.Quantity == "" {
		p.Quantity = "quantity"
	}
	if p.Field == "" {
		p.Field = "reorder_point"
	}
	return p
}

// Apply returns inventory with the reorder point field appended.
func (p ReorderPolicy) Apply(inventory, sales *Dataset) (*Dataset, error) {
	p = p.withDefaults()

	switch {
	case !inventory.Has(p.Product):
		return nil, &FieldError{Step: "reorder", Field: p.Product, Reason: "is not in the inventory dataset"}
	case inventory.Has(p.Field):
		return nil, &FieldError{Step: "reorder", Field: p.Field, Reason: "is already in the inventory dataset"}
	case !sales.Has(p.Product):
		return nil, &FieldError{Step: "reorder", Field: p.Product, Reason: "is not in the sales dataset"}
	case !sales.Has(p.Quantity):
		return nil, &FieldError{Step: "reorder", Field: p.Quantity, Reason: "is not in the sales dataset"}
	}
	if ok, _ := sales.IsNumeric(p.Quantity); !ok {
		return nil, &FieldError{Step: "reorder", Field: p.Quantity, Reason: "is not numeric"}
	}

	demand := make(map[string][]float64)
	for _, rec := range sales.records {
		q, _ := rec[p.Quantity].Float()
		key := rec[p.Product].String()
		demand[key] = append(demand[key], q)
	}

	records := make([]Record, len(inventory.records))
	for i, rec := range inventory.records {
		out := make(Record, len(rec)+1)
		for k, v := range rec {
			out[k] = v
		}
		out[p.Field] = Number(p.reorderPoint(demand[rec[p.Product].String()]))
		records[i] = out
	}

	fields := append(inventory.Fields(), p.Field)
	return reshaped(fields, records), nil
}

func (p ReorderPolicy) reorderPoint(daily []float64) float64 {
	if len(daily) == 0 {
		return 0
	}
	mean, std := meanStd(daily)
	safety := std * p.SafetyFactor * math.Sqrt(p.LeadTimeDays)
	return math.Ceil(mean*p.LeadTimeDays + safety)
}

// meanStd returns the mean and the sample standard deviation.
func meanStd(xs []float64) (mean, std float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}
