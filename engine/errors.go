package engine

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is. Every error returned by Resolve wraps
// exactly one of them.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrSchema       = errors.New("schema error")
	ErrConfig       = errors.New("config error")
)

// UnknownFieldError reports a series that references a field the dataset
// does not have.
type UnknownFieldError struct {
	Field  string
	Series int // index into ChartSpec.Series
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("series %d references unknown field %q", e.Series, e.Field)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// SchemaError reports a structural problem with the series for a chart kind.
type SchemaError struct {
	Kind   ChartKind
	Field  string // offending field, if a single one is to blame
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s chart: field %q %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s chart: %s", e.Kind, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// ConfigError reports an invalid ChartSpec property.
type ConfigError struct {
	Property string // "palette", "kind", "dataset"
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Property, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }
