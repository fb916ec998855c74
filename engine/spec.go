package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// CHARTSPEC — What the caller wants drawn
// ============================================================================
// A ChartSpec names the chart kind, which dataset fields play which role, and
// the palette to color value series (or pie slices) from. It says nothing about
// how the chart is drawn; that is the renderer's job.
// ============================================================================

// ChartKind is the chart family.
type ChartKind string

const (
	KindLine ChartKind = "line"
	KindBar  ChartKind = "bar"
	KindPie  ChartKind = "pie"
)

// Valid reports whether k is a known chart kind.
func (k ChartKind) Valid() bool {
	switch k {
	case KindLine, KindBar, KindPie:
		return true
	}
	return false
}

// ParseChartKind accepts "line", "bar" or "pie" in any case.
func ParseChartKind(s string) (ChartKind, error) {
	k := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown chart kind %q (must be line, bar or pie)", s)
	}
	return k, nil
}

// UnmarshalText decodes kinds case-insensitively. Unknown kinds decode as
// written and are rejected by Resolve, so they fail one chart, not the file.
func (k *ChartKind) UnmarshalText(text []byte) error {
	parsed, err := ParseChartKind(string(text))
	if err != nil {
		*k = ChartKind(text)
		return nil
	}
	*k = parsed
	return nil
}

// Role is the part a field plays in a chart.
type Role string

const (
	RoleCategory  Role = "category"  // x-axis ticks or pie slice labels
	RolePrimary   Role = "primary"   // plotted against the primary value axis
	RoleSecondary Role = "secondary" // plotted against the secondary value axis
)

// IsValue reports whether r plots magnitudes (primary or secondary axis).
func (r Role) IsValue() bool { return r == RolePrimary || r == RoleSecondary }

// ParseRole accepts the canonical names plus the long forms
// "category-axis", "value-axis-primary" and "value-axis-secondary".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "category-axis", "x":
		return RoleCategory, nil
	case "primary", "value", "value-axis-primary", "y":
		return RolePrimary, nil
	case "secondary", "value-axis-secondary", "y2":
		return RoleSecondary, nil
	}
	return "", fmt.Errorf("unknown series role %q (must be category, primary or secondary)", s)
}

// UnmarshalText lets roles decode from JSON and YAML using ParseRole.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// SeriesSpec binds one dataset field to a chart role.
type SeriesSpec struct {
	Field       string `json:"field" yaml:"field"`
	DisplayName string `json:"name,omitempty" yaml:"name,omitempty"`
	Role        Role   `json:"role" yaml:"role"`
}

// ChartSpec is the declarative description of one chart.
type ChartSpec struct {
	Kind    ChartKind    `json:"kind" yaml:"kind"`
	Title   string       `json:"title,omitempty" yaml:"title,omitempty"`
	Series  []SeriesSpec `json:"series" yaml:"series"`
	Palette []string     `json:"palette" yaml:"palette"`
}
