package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/pyproject/pkg/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed embedded/schema.json
var schemaBytes []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema catalogs are validated against
func Schema() string {
	return string(schemaBytes)
}

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("catalog.schema.json", bytes.NewReader(schemaBytes)); err != nil {
			schemaErr = fmt.Errorf("failed to add catalog schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("catalog.schema.json")
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a generic JSON document (as produced by
// encoding/json with UseNumber) against the catalog schema.
func validateDocument(doc interface{}) error {
	schema, err := catalogSchema()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "catalog schema does not compile")
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return formatSchemaValidationError(validationErr)
		}
		return errors.Wrap(err, errors.ErrSchema, "catalog validation failed")
	}
	return nil
}

// formatSchemaValidationError flattens the leaf causes of a validation
// error into one SCHEMA error listing every failing location.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 && e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return errors.New(errors.ErrSchema, "catalog validation failed")
	}

	return errors.Newf(errors.ErrSchema, "catalog validation failed:\n    - %s", strings.Join(messages, "\n    - ")).
		WithDetail("violations", messages)
}
