package dashboard

import (
	"errors"
	"fmt"

	"github.com/spektr-org/chartkit/dataset"
	"github.com/spektr-org/chartkit/engine"
)

// Explain turns a resolution error into a sentence fit to show in place of
// the chart. It names the offending field or spec property.
func Explain(err error, datasetName string) string {
	var (
		fieldErr   *engine.UnknownFieldError
		schemaErr  *engine.SchemaError
		configErr  *engine.ConfigError
		missingErr *MissingDatasetError
		recordErr  *dataset.RecordError
		queryErr   *dataset.FieldError
	)

	switch {
	case errors.As(err, &fieldErr):
		return fmt.Sprintf("This chart uses the field %q, which dataset %q does not have.", fieldErr.Field, datasetName)
	case errors.As(err, &schemaErr):
		if schemaErr.Field != "" {
			return fmt.Sprintf("This %s chart cannot be drawn: field %q %s.", schemaErr.Kind, schemaErr.Field, schemaErr.Reason)
		}
		return fmt.Sprintf("This %s chart cannot be drawn: it %s.", schemaErr.Kind, schemaErr.Reason)
	case errors.As(err, &configErr):
		return fmt.Sprintf("This chart is misconfigured: %s %s.", configErr.Property, configErr.Reason)
	case errors.As(err, &missingErr):
		return fmt.Sprintf("This chart refers to dataset %q, which is not defined.", missingErr.Name)
	case errors.As(err, &queryErr):
		return fmt.Sprintf("This chart's %s step cannot use %q of dataset %q: it %s.", queryErr.Step, queryErr.Field, datasetName, queryErr.Reason)
	case errors.As(err, &recordErr):
		return fmt.Sprintf("Dataset %q is malformed: %s.", datasetName, recordErr.Error())
	case errors.Is(err, dataset.ErrEmptySchema):
		return fmt.Sprintf("Dataset %q has no fields.", datasetName)
	case err != nil:
		return fmt.Sprintf("Dataset %q could not be loaded: %v.", datasetName, err)
	}
	return ""
}
