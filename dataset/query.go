package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ============================================================================
// QUERY — Filter, group, sort and limit before charting
// ============================================================================
// Pipeline: filter → group/aggregate → sort → limit. Each step produces a new
// Dataset; the input is never modified. Grouping keeps first-seen order, so
// an unsorted query still reads in the order the records were written.
// ============================================================================

// Aggregation folds the records of one group into a single number per field.
type Aggregation string

const (
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
	AggCount Aggregation = "count"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
)

// CountField is the field a count aggregation writes.
const CountField = "count"

// Query reshapes a Dataset. The zero Query returns the dataset unchanged.
type Query struct {
	// Filter keeps records whose field matches one of the listed values,
	// compared case-insensitively. Fields are AND-combined.
	Filter map[string][]string `json:"filter,omitempty" yaml:"filter,omitempty"`
	// GroupBy collapses records sharing a value of this field into one.
	GroupBy string `json:"groupBy,omitempty" yaml:"groupBy,omitempty"`
	// Aggregate defaults to sum when GroupBy is set.
	Aggregate Aggregation `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	// Sort is a field name with an optional "_asc" or "_desc" suffix.
	Sort  string `json:"sort,omitempty" yaml:"sort,omitempty"`
	Limit int    `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// FieldError reports a query step naming a field the dataset does not have,
// or a setting it cannot apply.
type FieldError struct {
	Step   string
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q %s", e.Step, e.Field, e.Reason)
}

// Apply runs the query against d.
func (q Query) Apply(d *Dataset) (*Dataset, error) {
	out, err := applyFilter(d, q.Filter)
	if err != nil {
		return nil, err
	}

	if q.GroupBy != "" {
		agg := q.Aggregate
		if agg == "" {
			agg = AggSum
		}
		if out, err = groupBy(out, q.GroupBy, agg); err != nil {
			return nil, err
		}
	} else if q.Aggregate != "" {
		return nil, &FieldError{Step: "aggregate", Field: string(q.Aggregate), Reason: "needs groupBy"}
	}

	if q.Sort != "" {
		if out, err = sortBy(out, q.Sort); err != nil {
			return nil, err
		}
	}

	if q.Limit > 0 && out.Len() > q.Limit {
		out = out.derive(out.records[:q.Limit])
	}
	return out, nil
}

// derive keeps d's schema over a new record list. Records are shared with d;
// they are never written after New.
func (d *Dataset) derive(records []Record) *Dataset {
	return &Dataset{fields: d.fields, index: d.index, records: records}
}

func reshaped(fields []string, records []Record) *Dataset {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f] = i
	}
	return &Dataset{fields: fields, index: index, records: records}
}

// ============================================================================
// FILTER
// ============================================================================

func applyFilter(d *Dataset, filter map[string][]string) (*Dataset, error) {
	sets := make(map[string]map[string]bool)
	for field, allowed := range filter {
		if !d.Has(field) {
			return nil, &FieldError{Step: "filter", Field: field, Reason: "is not in the dataset"}
		}
		if len(allowed) > 0 {
			sets[field] = toLowerSet(allowed)
		}
	}
	if len(sets) == 0 {
		return d, nil
	}

	kept := make([]Record, 0, d.Len())
	for _, rec := range d.records {
		pass := true
		for field, set := range sets {
			if !set[strings.ToLower(rec[field].String())] {
				pass = false
				break
			}
		}
		if pass {
			kept = append(kept, rec)
		}
	}
	return d.derive(kept), nil
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

// ============================================================================
// GROUP + AGGREGATE
// ============================================================================

// groupBy returns one record per distinct key. The result holds the key field
// followed by every numeric field (or CountField for a count).
func groupBy(d *Dataset, key string, agg Aggregation) (*Dataset, error) {
	if !d.Has(key) {
		return nil, &FieldError{Step: "groupBy", Field: key, Reason: "is not in the dataset"}
	}

	var measures []string
	switch agg {
	case AggCount:
		if key == CountField {
			return nil, &FieldError{Step: "aggregate", Field: key, Reason: "collides with the count field"}
		}
		measures = []string{CountField}
	case AggSum, AggAvg, AggMin, AggMax:
		for _, f := range d.fields {
			if f == key {
				continue
			}
			if ok, _ := d.IsNumeric(f); ok {
				measures = append(measures, f)
			}
		}
	default:
		return nil, &FieldError{Step: "aggregate", Field: string(agg), Reason: "must be sum, avg, count, min or max"}
	}

	grouped := make(map[string][]Record)
	keys := make(map[string]Value)
	var order []string
	for _, rec := range d.records {
		k := rec[key].String()
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
			keys[k] = rec[key]
		}
		grouped[k] = append(grouped[k], rec)
	}

	records := make([]Record, 0, len(order))
	for _, k := range order {
		members := grouped[k]
		out := Record{key: keys[k]}
		for _, m := range measures {
			out[m] = Number(aggregate(members, m, agg))
		}
		records = append(records, out)
	}

	fields := append([]string{key}, measures...)
	return reshaped(fields, records), nil
}

func aggregate(members []Record, field string, agg Aggregation) float64 {
	if agg == AggCount {
		return float64(len(members))
	}

	var total float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, rec := range members {
		v, _ := rec[field].Float()
		total += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	switch agg {
	case AggAvg:
		return total / float64(len(members))
	case AggMin:
		return lo
	case AggMax:
		return hi
	}
	return total
}

// ============================================================================
// SORT
// ============================================================================

func sortBy(d *Dataset, mode string) (*Dataset, error) {
	field, desc := mode, false
	if f, ok := strings.CutSuffix(mode, "_desc"); ok && d.Has(f) {
		field, desc = f, true
	} else if f, ok := strings.CutSuffix(mode, "_asc"); ok && d.Has(f) {
		field = f
	}
	if !d.Has(field) {
		return nil, &FieldError{Step: "sort", Field: field, Reason: "is not in the dataset"}
	}

	records := append([]Record(nil), d.records...)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i][field], records[j][field]
		if desc {
			a, b = b, a
		}
		return less(a, b)
	})
	return d.derive(records), nil
}

// less orders numbers before strings, numbers numerically and strings
// case-insensitively.
func less(a, b Value) bool {
	af, aNum := a.Float()
	bf, bNum := b.Float()
	switch {
	case aNum && bNum:
		return af < bf
	case aNum != bNum:
		return aNum
	}
	return strings.ToLower(a.String()) < strings.ToLower(b.String())
}
