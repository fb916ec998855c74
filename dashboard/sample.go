package dashboard

import (
	_ "embed"
)

//go:embed sample.yaml
var sampleYAML []byte

// SampleYAML returns the source of the built-in sample dashboard.
func SampleYAML() []byte {
	return append([]byte(nil), sampleYAML...)
}

// Sample parses the built-in four-chart dashboard: monthly product revenue,
// category distribution, customer segments and inventory levels.
func Sample() (*Document, error) {
	return Parse(sampleYAML, "")
}
