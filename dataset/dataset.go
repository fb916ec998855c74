package dataset

import (
	"errors"
	"fmt"
	"sort"
)

// ============================================================================
// DATASET — Ordered, schema-uniform records
// ============================================================================
// A Dataset is read-only once built. The resolver and the renderers only ever
// read it, so one Dataset can back any number of charts concurrently.
// ============================================================================

// ErrEmptySchema is returned when a dataset would have no fields.
var ErrEmptySchema = errors.New("dataset has no fields")

// Record is one row: field name → scalar.
type Record map[string]Value

// RecordError reports a record that does not conform to the dataset schema.
type RecordError struct {
	Index  int
	Field  string
	Reason string
}

func (e *RecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("record %d: field %q %s", e.Index, e.Field, e.Reason)
}

// Dataset is an ordered sequence of Records sharing one set of field names.
type Dataset struct {
	fields  []string
	index   map[string]int
	records []Record
}

// New builds a Dataset with an explicit field order.
// Every record must carry exactly the given fields. Records are copied, so
// later changes to the caller's slice or maps do not reach the Dataset.
func New(fields []string, records []Record) (*Dataset, error) {
	if len(fields) == 0 {
		return nil, ErrEmptySchema
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("field %d has an empty name", i)
		}
		if _, dup := index[f]; dup {
			return nil, fmt.Errorf("duplicate field %q", f)
		}
		index[f] = i
	}

	for i, rec := range records {
		for _, f := range fields {
			if _, ok := rec[f]; !ok {
				return nil, &RecordError{Index: i, Field: f, Reason: "is missing"}
			}
		}
		if len(rec) != len(fields) {
			for k := range rec {
				if _, ok := index[k]; !ok {
					return nil, &RecordError{Index: i, Field: k, Reason: "is not in the schema"}
				}
			}
		}
	}

	owned := make([]Record, len(records))
	for i, rec := range records {
		cp := make(Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		owned[i] = cp
	}

	return &Dataset{
		fields:  append([]string(nil), fields...),
		index:   index,
		records: owned,
	}, nil
}

// FromRecords infers the schema from the first record (fields sorted by name)
// and validates the remaining records against it.
func FromRecords(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptySchema
	}
	fields := make([]string, 0, len(records[0]))
	for k := range records[0] {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return New(fields, records)
}

// Fields returns the schema in declared order.
func (d *Dataset) Fields() []string { return append([]string(nil), d.fields...) }

// Has reports whether field is part of the schema.
func (d *Dataset) Has(field string) bool {
	_, ok := d.index[field]
	return ok
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Value returns the cell at record i, field f.
// Out-of-range indices and unknown fields yield the zero Value.
func (d *Dataset) Value(i int, field string) Value {
	if i < 0 || i >= len(d.records) {
		return Value{}
	}
	return d.records[i][field]
}

// Column returns a fresh slice of one field's values in record order.
func (d *Dataset) Column(field string) []Value {
	col := make([]Value, len(d.records))
	for i, rec := range d.records {
		col[i] = rec[field]
	}
	return col
}

// IsNumeric reports whether every record holds a number in field.
// The first offending record index is returned when it does not.
func (d *Dataset) IsNumeric(field string) (bool, int) {
	for i, rec := range d.records {
		if !rec[field].IsNumber() {
			return false, i
		}
	}
	return true, -1
}
