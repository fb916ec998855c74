package dataset

import (
	"fmt"
)

// Source is the serialized form of a Dataset as it appears in JSON or YAML
// documents. Fields is optional; when empty the schema is inferred from the
// first record.
type Source struct {
	Fields  []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Records []Record `json:"records" yaml:"records"`
}

// Build validates the source and returns the Dataset.
func (s Source) Build() (*Dataset, error) {
	if len(s.Fields) == 0 {
		return FromRecords(s.Records)
	}
	return New(s.Fields, s.Records)
}

// ParseJSON decodes either a bare array of objects or a Source object.
func ParseJSON(data []byte) (*Dataset, error) {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse dataset JSON: %w", err)
	}

	var src Source
	switch probe.(type) {
	case []interface{}:
		if err := json.Unmarshal(data, &src.Records); err != nil {
			return nil, fmt.Errorf("failed to parse dataset records: %w", err)
		}
	case map[string]interface{}:
		if err := json.Unmarshal(data, &src); err != nil {
			return nil, fmt.Errorf("failed to parse dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("dataset JSON must be an array or an object, got %T", probe)
	}
	return src.Build()
}

// ToSource returns the serializable form of d.
func (d *Dataset) ToSource() Source {
	records := make([]Record, len(d.records))
	for i, rec := range d.records {
		cp := make(Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		records[i] = cp
	}
	return Source{Fields: d.Fields(), Records: records}
}
