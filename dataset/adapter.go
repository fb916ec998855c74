package dataset

// ============================================================================
// DOMAIN ADAPTER — Builds a Dataset from typed structs
// ============================================================================
// Consumers register one accessor per field once, then bind any number of
// slices:
//
//	revenue := dataset.NewAdapter[Sale]().
//	    Text("month", func(s Sale) string { return s.Month }).
//	    Number("revenue", func(s Sale) float64 { return s.Revenue })
//	ds, err := revenue.Bind(sales)
// ============================================================================

// Adapter maps a Go struct type T onto dataset fields.
type Adapter[T any] struct {
	order    []string
	accessor map[string]func(T) Value
}

// NewAdapter creates an empty adapter for T.
func NewAdapter[T any]() *Adapter[T] {
	return &Adapter[T]{accessor: make(map[string]func(T) Value)}
}

// Text registers a string field. Re-registering a field replaces its accessor
// but keeps its original position.
func (a *Adapter[T]) Text(field string, fn func(T) string) *Adapter[T] {
	return a.register(field, func(t T) Value { return String(fn(t)) })
}

// Number registers a numeric field.
func (a *Adapter[T]) Number(field string, fn func(T) float64) *Adapter[T] {
	return a.register(field, func(t T) Value { return Number(fn(t)) })
}

func (a *Adapter[T]) register(field string, fn func(T) Value) *Adapter[T] {
	if _, exists := a.accessor[field]; !exists {
		a.order = append(a.order, field)
	}
	a.accessor[field] = fn
	return a
}

// Bind materializes data into a Dataset, fields in registration order.
func (a *Adapter[T]) Bind(data []T) (*Dataset, error) {
	records := make([]Record, len(data))
	for i, item := range data {
		rec := make(Record, len(a.order))
		for _, f := range a.order {
			rec[f] = a.accessor[f](item)
		}
		records[i] = rec
	}
	return New(a.order, records)
}
