package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	//go:embed config.schema.json
	configSchemaJSON []byte

	//go:embed mockfile.schema.json
	mockFileSchemaJSON []byte
)

var (
	schemasOnce    sync.Once
	configSchema   *jsonschema.Schema
	mockFileSchema *jsonschema.Schema
	schemasErr     error
)

// ConfigSchema returns the JSON Schema configuration documents must satisfy.
func ConfigSchema() []byte {
	return bytes.Clone(configSchemaJSON)
}

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("config.schema.json", bytes.NewReader(configSchemaJSON)); err != nil {
		schemasErr = fmt.Errorf("failed to add config schema: %w", err)
		return
	}
	if err := compiler.AddResource("mockfile.schema.json", bytes.NewReader(mockFileSchemaJSON)); err != nil {
		schemasErr = fmt.Errorf("failed to add mock file schema: %w", err)
		return
	}

	if configSchema, schemasErr = compiler.Compile("config.schema.json"); schemasErr != nil {
		return
	}
	mockFileSchema, schemasErr = compiler.Compile("mockfile.schema.json")
}

// validateDocument checks a decoded configuration document.
func validateDocument(doc interface{}) error {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return schemasErr
	}
	return validateAgainst(configSchema, doc)
}

// validateMockFile checks a decoded mock file.
func validateMockFile(doc interface{}) error {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return schemasErr
	}
	return validateAgainst(mockFileSchema, doc)
}

func validateAgainst(schema *jsonschema.Schema, doc interface{}) error {
	// Convert to JSON and back so YAML scalars arrive as JSON types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var normalized interface{}
	if err := dec.Decode(&normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := schema.Validate(normalized); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, describeValidationError(validationErr))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// describeValidationError reports the first leaf cause with its location.
func describeValidationError(err *jsonschema.ValidationError) string {
	leaf := err
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	location := leaf.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("%s: %s", location, leaf.Message)
}
